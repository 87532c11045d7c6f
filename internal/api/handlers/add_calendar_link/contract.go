package add_calendar_link

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

type UnitService interface {
	AddCalendarLink(ctx context.Context, tenantID string, unitID int64, req *models.AddLinkRequest) (*models.UnitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
