package calendars

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
	GetByNameVersion(ctx context.Context, name string, version int) (*domain.Calendar, error)
	MaxVersion(ctx context.Context, name string) (int, error)
	ReplaceLatest(ctx context.Context, name string, cal *domain.Calendar) (*domain.Calendar, error)
	List(ctx context.Context, name *string, category *domain.CalendarCategory, active *bool) ([]*domain.Calendar, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
