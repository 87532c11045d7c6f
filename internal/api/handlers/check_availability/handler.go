package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenantID    = "отсутствует идентификатор тенанта"
	msgUnitNotFound       = "юнит не найден"
	msgCalendarNotFound   = "календарь не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability/check - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /availability/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkAvailability.ErrUnitNotFound):
			h.logger.Warn("POST /availability/check - Unit not found: tenant=%s, unit_key=%s", tenantID, req.UnitKey)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, checkAvailability.ErrCalendarNotFound):
			h.logger.Warn("POST /availability/check - Calendar not found: unit_key=%s", req.UnitKey)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		default:
			h.logger.Error("POST /availability/check - Failed: unit_key=%s, error=%v", req.UnitKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - Checked: tenant=%s, unit_key=%s, ok=%v",
		tenantID, req.UnitKey, result.OK)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
