package save_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMode        = "некорректный режим сохранения, ожидается version или overwrite"
	msgVersionConflict    = "конфликт версий календаря, повторите запрос"
)

// Режимы сохранения: новая версия или перезапись последней
const (
	modeVersion   = "version"
	modeOverwrite = "overwrite"
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

// Handle POST /api/v1/calendars?mode=version|overwrite
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = modeVersion
	}
	if mode != modeVersion && mode != modeOverwrite {
		h.logger.Warn("POST /calendars - Invalid mode: %s", mode)
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}

	var req models.SaveCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.CalendarResponse
	var err error
	if mode == modeOverwrite {
		result, err = h.service.OverwriteLatest(r.Context(), &req)
	} else {
		result, err = h.service.CreateVersion(r.Context(), &req)
	}

	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("POST /calendars - Invalid input: name=%s, error=%v", req.Name, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, calendars.ErrVersionConflict):
			h.logger.Warn("POST /calendars - Version conflict: name=%s", req.Name)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("POST /calendars - Failed: name=%s, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars - Saved: name=%s, version=%d, mode=%s", result.Name, result.Version, mode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
