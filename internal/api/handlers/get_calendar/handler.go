package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgNotFound          = "календарь не найден"
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

// Handle GET /api/v1/calendars/{calendarId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	calendarID, err := strconv.ParseInt(vars["calendarId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id} - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	calendar, err := h.service.GetByID(r.Context(), calendarID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id} - Not found: calendar_id=%d", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /calendars/{id} - Failed: calendar_id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id} - Retrieved: calendar_id=%d", calendarID)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
