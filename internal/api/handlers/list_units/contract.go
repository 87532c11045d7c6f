package list_units

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

type UnitService interface {
	List(ctx context.Context, tenantID string) (*models.UnitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
