package add_calendar_link

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/units"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

const (
	msgInvalidUnitID      = "некорректный ID юнита"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует идентификатор тенанта"
	msgUnitNotFound       = "юнит не найден"
	msgCalendarNotFound   = "календарь не найден"
	msgDuplicateLink      = "привязка с этой effective-датой уже существует"
)

type Handler struct {
	service UnitService
	logger  Logger
}

func NewHandler(service UnitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/units/{unitId}/calendar-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /units/{id}/calendar-links - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /units/{id}/calendar-links - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.AddLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /units/{id}/calendar-links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddCalendarLink(r.Context(), tenantID, unitID, &req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidInput):
			h.logger.Warn("POST /units/{id}/calendar-links - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, units.ErrUnitNotFound):
			h.logger.Warn("POST /units/{id}/calendar-links - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, units.ErrCalendarNotFound):
			h.logger.Warn("POST /units/{id}/calendar-links - Calendar not found: calendar_id=%d", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, units.ErrDuplicateLink):
			h.logger.Warn("POST /units/{id}/calendar-links - Duplicate link: unit_id=%d, effective=%s", unitID, req.EffectiveDate)
			handlers.RespondConflict(w, msgDuplicateLink)

		default:
			h.logger.Error("POST /units/{id}/calendar-links - Failed: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /units/{id}/calendar-links - Linked: unit_id=%d, calendar_id=%d, tenant=%s",
		unitID, req.CalendarID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
