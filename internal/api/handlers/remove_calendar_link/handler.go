package remove_calendar_link

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
	msgLinkNotFound       = "привязка календаря не найдена"
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

// Handle DELETE /api/v1/units/{unitId}/calendar-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /units/{id}/calendar-links - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /units/{id}/calendar-links - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.RemoveLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /units/{id}/calendar-links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.RemoveCalendarLink(r.Context(), tenantID, unitID, &req); err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidInput):
			h.logger.Warn("DELETE /units/{id}/calendar-links - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, units.ErrUnitNotFound):
			h.logger.Warn("DELETE /units/{id}/calendar-links - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, units.ErrLinkNotFound):
			h.logger.Warn("DELETE /units/{id}/calendar-links - Link not found: unit_id=%d, calendar_id=%d", unitID, req.CalendarID)
			handlers.RespondNotFound(w, msgLinkNotFound)

		default:
			h.logger.Error("DELETE /units/{id}/calendar-links - Failed: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /units/{id}/calendar-links - Unlinked: unit_id=%d, calendar_id=%d, tenant=%s",
		unitID, req.CalendarID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}
