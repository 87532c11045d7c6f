package get_unit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/units"
)

const (
	msgInvalidUnitID   = "некорректный ID юнита"
	msgMissingTenantID = "отсутствует идентификатор тенанта"
	msgNotFound        = "юнит не найден"
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

// Handle GET /api/v1/units/{unitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /units/{id} - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /units/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	unit, err := h.service.GetByID(r.Context(), tenantID, unitID)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrUnitNotFound):
			h.logger.Warn("GET /units/{id} - Not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /units/{id} - Failed: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /units/{id} - Retrieved: unit_id=%d, tenant=%s", unitID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, unit)
}
