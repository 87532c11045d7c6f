package create_unit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/units"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует идентификатор тенанта"
	msgDuplicateUnitKey   = "ключ юнита уже занят в рамках тенанта"
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

// Handle POST /api/v1/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /units - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.CreateUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidInput):
			h.logger.Warn("POST /units - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, units.ErrDuplicateUnitKey):
			h.logger.Warn("POST /units - Duplicate unit key: tenant=%s, unit_key=%s", tenantID, req.UnitKey)
			handlers.RespondConflict(w, msgDuplicateUnitKey)

		default:
			h.logger.Error("POST /units - Failed: tenant=%s, unit_key=%s, error=%v", tenantID, req.UnitKey, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /units - Unit created: tenant=%s, unit_id=%d", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
