package units

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UnitRepository интерфейс репозитория юнитов
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) (*domain.Unit, error)
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
	GetByTenantAndKey(ctx context.Context, tenantID, unitKey string) (*domain.Unit, error)
	AddCalendarLink(ctx context.Context, unitID int64, link domain.CalendarLink) error
	RemoveCalendarLink(ctx context.Context, unitID, calendarID int64, effectiveDate string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Unit, error)
}

// CalendarRepository интерфейс репозитория календарей.
// Нужен для проверки существования календаря при привязке и
// денормализации его имени и версии в ссылку.
type CalendarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
