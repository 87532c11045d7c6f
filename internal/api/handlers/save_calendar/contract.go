package save_calendar

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	CreateVersion(ctx context.Context, req *models.SaveCalendarRequest) (*models.CalendarResponse, error)
	OverwriteLatest(ctx context.Context, req *models.SaveCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
