package get_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	getQuote "github.com/m04kA/SMC-ReservationService/internal/usecase/get_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenantID    = "отсутствует идентификатор тенанта"
	msgUnitNotFound       = "юнит не найден"
	msgNoCalendarForDate  = "на запрошенную дату не действует ни один календарь"
	msgCalendarNotFound   = "календарь не найден"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /quotes - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req GetQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getQuote.ErrUnitNotFound):
			h.logger.Warn("POST /quotes - Unit not found: tenant=%s, unit_key=%s", tenantID, req.UnitKey)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, getQuote.ErrNoCalendarForDate):
			h.logger.Warn("POST /quotes - No calendar for date: unit_key=%s, check_in=%s", req.UnitKey, req.CheckIn)
			handlers.RespondNotFound(w, msgNoCalendarForDate)

		case errors.Is(err, getQuote.ErrCalendarNotFound):
			h.logger.Warn("POST /quotes - Calendar not found: unit_key=%s", req.UnitKey)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		default:
			h.logger.Error("POST /quotes - Failed: unit_key=%s, error=%v", req.UnitKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: tenant=%s, unit_key=%s, total=%.2f %s",
		tenantID, req.UnitKey, result.Total, result.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
