package list_calendars

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

const (
	msgInvalidActive   = "некорректное значение фильтра active"
	msgInvalidCategory = "некорректная категория календаря"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars?name=&category=&active=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCalendarsRequest{}

	query := r.URL.Query()
	if name := query.Get("name"); name != "" {
		req.Name = &name
	}
	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if activeStr := query.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.logger.Warn("GET /calendars - Invalid active filter: %s", activeStr)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		req.Active = &active
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("GET /calendars - Invalid category filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /calendars - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars - Retrieved %d calendars", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
