package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addCalendarLinkHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/add_calendar_link"
	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	createUnitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_unit"
	getCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_calendar"
	getQuoteHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_quote"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUnitHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_unit"
	getUnitReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_unit_reservations"
	listCalendarsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_calendars"
	listUnitsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_units"
	removeCalendarLinkHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/remove_calendar_link"
	saveCalendarHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/save_calendar"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrate"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	calendarsService "github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	unitsService "github.com/m04kA/SMC-ReservationService/internal/service/units"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getQuoteUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_quote"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем схему
	if err := migrate.Run(context.Background(), db); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database schema is up to date")

	// Инициализируем репозитории (с метриками или без)
	var (
		calendarRepository    *calendarRepo.Repository
		unitRepository        *unitRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		unitRepository = unitRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		calendarRepository = calendarRepo.NewRepository(db)
		unitRepository = unitRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	calendarSvc := calendarsService.NewService(calendarRepository, log)
	unitSvc := unitsService.NewService(unitRepository, calendarRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, unitRepository, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		unitRepository,
		calendarRepository,
		reservationRepository,
		log,
	)
	getQuoteUseCase := getQuoteUC.NewUseCase(
		unitRepository,
		calendarRepository,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		unitRepository,
		calendarRepository,
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUnitReservations := getUnitReservationsHandler.NewHandler(reservationSvc, log)
	saveCalendar := saveCalendarHandler.NewHandler(calendarSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	listCalendars := listCalendarsHandler.NewHandler(calendarSvc, log)
	createUnit := createUnitHandler.NewHandler(unitSvc, log)
	getUnit := getUnitHandler.NewHandler(unitSvc, log)
	listUnits := listUnitsHandler.NewHandler(unitSvc, log)
	addCalendarLink := addCalendarLinkHandler.NewHandler(unitSvc, log)
	removeCalendarLink := removeCalendarLinkHandler.NewHandler(unitSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все маршруты требуют X-Tenant-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.TenantAuth)

	// --- Доступность и расчёт стоимости ---
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/quotes", getQuote.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// --- Календари ---
	api.HandleFunc("/calendars", saveCalendar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/calendars", listCalendars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendars/{calendarId}", getCalendar.Handle).Methods(http.MethodGet)

	// --- Юниты и привязки календарей ---
	api.HandleFunc("/units", createUnit.Handle).Methods(http.MethodPost)
	api.HandleFunc("/units", listUnits.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}", getUnit.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/reservations", getUnitReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/calendar-links", addCalendarLink.Handle).Methods(http.MethodPost)
	api.HandleFunc("/units/{unitId}/calendar-links", removeCalendarLink.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
