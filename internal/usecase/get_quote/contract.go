package get_quote

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	GetByTenantAndKey(ctx context.Context, tenantID, unitKey string) (*domain.Unit, error)
}

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
