package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenantID    = "отсутствует идентификатор тенанта"
	msgUnitNotFound       = "юнит не найден"
	msgNoCalendarForDate  = "на запрошенную дату не действует ни один календарь"
	msgCalendarNotFound   = "календарь не найден"
	msgOverlap            = "запрошенные даты пересекаются с существующим бронированием"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrUnitNotFound):
			h.logger.Warn("POST /reservations - Unit not found: tenant=%s, unit_key=%s", tenantID, req.UnitKey)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, createReservation.ErrNoCalendarForDate):
			h.logger.Warn("POST /reservations - No calendar for date: unit_key=%s, check_in=%s", req.UnitKey, req.CheckIn)
			handlers.RespondNotFound(w, msgNoCalendarForDate)

		case errors.Is(err, createReservation.ErrCalendarNotFound):
			h.logger.Warn("POST /reservations - Calendar not found: unit_key=%s", req.UnitKey)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, createReservation.ErrOverlap):
			h.logger.Warn("POST /reservations - Overlap: tenant=%s, unit_key=%s, check_in=%s", tenantID, req.UnitKey, req.CheckIn)
			handlers.RespondConflict(w, msgOverlap)

		default:
			h.logger.Error("POST /reservations - Failed: unit_key=%s, error=%v", req.UnitKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отказ по правилам — не ошибка протокола: 200 и список reason-кодов
	if !result.OK {
		h.logger.Info("POST /reservations - Rejected by rules: tenant=%s, unit_key=%s, codes=%v",
			tenantID, req.UnitKey, result.ReasonCodes)
		handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
		return
	}

	h.logger.Info("POST /reservations - Reservation created: tenant=%s, unit_key=%s, reservation_id=%d",
		tenantID, req.UnitKey, result.Reservation.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
