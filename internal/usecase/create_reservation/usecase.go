package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// UseCase оркестратор коммита бронирования:
// резолв календаря → оценка правил → проверка пересечений → снапшот
// коммерческих условий → вставка.
//
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции: пара "запрос + запись" без неё — гонка при конкурентных
// коммитах на один юнит. Вторым рубежом стоит exclusion-ограничение
// в схеме: даже транзакция, проскочившая мимо проверки, не сможет
// зафиксировать пересекающееся бронирование.
type UseCase struct {
	unitRepo        UnitRepository
	calendarRepo    CalendarRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	unitRepo UnitRepository,
	calendarRepo CalendarRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		unitRepo:        unitRepo,
		calendarRepo:    calendarRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет коммит бронирования.
// До коммита отмена запроса не оставляет частичного состояния;
// после успешного коммита отмена уже ни на что не влияет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%s, unit=%s, check_in=%s, check_out=%s",
		req.TenantID, req.UnitKey, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}
	mode := normalizeMode(req.Mode)

	// 2. Получаем текущее время
	today := dateutil.Today(uc.timeProvider.Now())

	// 3. Получаем юнит (read-mostly, вне транзакции)
	unit, err := uc.unitRepo.GetByTenantAndKey(ctx, req.TenantID, req.UnitKey)
	if err != nil {
		if errors.Is(err, unitRepo.ErrUnitNotFound) {
			uc.logger.Warn("CreateReservation: unit %s/%s not found", req.TenantID, req.UnitKey)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("CreateReservation: failed to get unit %s/%s: %v", req.TenantID, req.UnitKey, err)
		return nil, fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
	}

	// 4. Резолвим привязку календаря на день заезда
	link := domain.ResolveCalendarLink(unit.CalendarLinks, req.CheckIn)
	if link == nil {
		uc.logger.Warn("CreateReservation: no calendar effective on %s for unit id=%d", req.CheckIn, unit.ID)
		return nil, ErrNoCalendarForDate
	}

	endInclusive := req.CheckOut
	if mode == domain.CategoryAppointments {
		endInclusive = req.CheckIn
	}
	endExclusive := endInclusive.AddDays(1)
	nights := dateutil.Nights(req.CheckIn, endInclusive)

	var result *domain.Reservation
	var rejection *domain.Decision

	// 5. Оценка правил, проверка пересечений и вставка — в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Загружаем календарь по привязке
		cal, err := uc.calendarRepo.GetByID(txCtx, link.CalendarID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get calendar id=%d: %v", link.CalendarID, err)
			return ErrCalendarNotFound
		}

		// 5.2. Оцениваем правила календаря
		decision, err := domain.Evaluate(cal, domain.EvaluationRequest{
			Start:        req.CheckIn,
			EndInclusive: endInclusive,
			Mode:         mode,
			Today:        today,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: rule evaluation failed for calendar id=%d: %v", cal.ID, err)
			return fmt.Errorf("%w: rule evaluation failed: %v", ErrInternal, err)
		}
		if !decision.OK {
			uc.logger.Info("CreateReservation: rejected by rules, codes=%v", decision.ReasonCodes)
			rejection = &decision
			return nil
		}

		// 5.3. Проверяем пересечения с блокировкой строк (FOR UPDATE)
		overlapping, err := uc.reservationRepo.FindOverlapping(
			txCtx, unit.ID, req.CheckIn.String(), endExclusive.String(), domain.BlockingStatuses,
		)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to find overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to find overlapping reservations: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: %d overlapping reservations for unit id=%d", len(overlapping), unit.ID)
			return ErrOverlap
		}

		// 5.4. Снапшот коммерческих условий на момент коммита.
		// Дальнейшие правки календаря это бронирование не затронут.
		res := &domain.Reservation{
			UnitID:          unit.ID,
			UnitName:        unit.Name,
			UnitNumber:      unit.UnitNumber,
			CalendarID:      cal.ID,
			CalendarName:    cal.Name,
			CalendarVersion: cal.Version,
			StartDay:        req.CheckIn,
			EndDay:          endExclusive,
			Rate:            unit.Rate,
			Currency:        unit.Currency,
			CancelHours:     cal.Cancellation.NoticeHours,
			CancelFee:       cal.Cancellation.Fee,
			Guest:           req.Guest,
			Payment:         req.Payment,
			Status:          domain.StatusConfirmed,
		}

		// 5.5. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				// Гонка дошла до exclusion-ограничения
				uc.logger.Warn("CreateReservation: overlap constraint hit for unit id=%d", unit.ID)
				return ErrOverlap
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if rejection != nil {
		return &Response{OK: false, ReasonCodes: rejection.ReasonCodes}, nil
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d for unit id=%d",
		result.ID, unit.ID)

	return &Response{
		OK:          true,
		ReasonCodes: []domain.ReasonCode{},
		Reservation: &CreatedReservation{
			ID:              result.ID,
			UnitID:          unit.ID,
			UnitKey:         unit.UnitKey,
			UnitName:        unit.Name,
			UnitNumber:      unit.UnitNumber,
			CalendarID:      result.CalendarID,
			CalendarName:    result.CalendarName,
			CalendarVersion: result.CalendarVersion,
			CheckIn:         req.CheckIn,
			CheckOut:        endInclusive,
			Nights:          nights,
			Rate:            result.Rate,
			Currency:        result.Currency,
			Total:           result.Rate * float64(nights),
			CancelHours:     result.CancelHours,
			CancelFee:       result.CancelFee,
			Status:          string(result.Status),
			Guest:           result.Guest,
			Payment:         result.Payment,
			CreatedAt:       result.CreatedAt,
		},
	}, nil
}
