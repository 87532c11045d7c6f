package unit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий для работы с юнитами и их привязками календарей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория юнитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый юнит
func (r *Repository) Create(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("units").
		Columns(
			"tenant_id",
			"unit_key",
			"name",
			"unit_number",
			"rate",
			"currency",
			"active",
		).
		Values(
			unit.TenantID,
			unit.UnitKey,
			unit.Name,
			unit.UnitNumber,
			unit.Rate,
			unit.Currency,
			unit.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateUnitKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time
	unit.CalendarLinks = make([]domain.CalendarLink, 0)

	return unit, nil
}

// GetByID получает юнит по ID вместе с привязками календарей
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Unit, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTenantAndKey получает юнит по (tenant_id, unit_key) вместе с привязками
func (r *Repository) GetByTenantAndKey(ctx context.Context, tenantID, unitKey string) (*domain.Unit, error) {
	return r.getOne(ctx, squirrel.Eq{"tenant_id": tenantID, "unit_key": unitKey})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"unit_key",
		"name",
		"unit_number",
		"rate",
		"currency",
		"active",
		"created_at",
		"updated_at",
	).
		From("units").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.Unit
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.TenantID,
		&unit.UnitKey,
		&unit.Name,
		&unit.UnitNumber,
		&unit.Rate,
		&unit.Currency,
		&unit.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan unit: %v", ErrScanRow, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	links, err := r.getLinks(ctx, unit.ID)
	if err != nil {
		return nil, err
	}
	unit.CalendarLinks = links

	return &unit, nil
}

// getLinks получает привязки календарей юнита, отсортированные по effective-дате
func (r *Repository) getLinks(ctx context.Context, unitID int64) ([]domain.CalendarLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"calendar_id",
		"calendar_name",
		"calendar_version",
		"to_char(effective_date, 'YYYY-MM-DD')",
	).
		From("unit_calendar_links").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("effective_date ASC, calendar_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getLinks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getLinks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	links := make([]domain.CalendarLink, 0)
	for rows.Next() {
		var link domain.CalendarLink
		if err := rows.Scan(
			&link.CalendarID,
			&link.CalendarName,
			&link.CalendarVersion,
			&link.EffectiveDate,
		); err != nil {
			return nil, fmt.Errorf("%w: getLinks - scan row: %v", ErrScanRow, err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getLinks - rows error: %v", ErrScanRow, err)
	}

	return links, nil
}

// AddCalendarLink добавляет привязку календаря к юниту.
// Привязки только добавляются или удаляются, но не изменяются на месте —
// так сохраняется история effective-дат.
func (r *Repository) AddCalendarLink(ctx context.Context, unitID int64, link domain.CalendarLink) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unit_calendar_links").
		Columns(
			"unit_id",
			"calendar_id",
			"calendar_name",
			"calendar_version",
			"effective_date",
		).
		Values(
			unitID,
			link.CalendarID,
			link.CalendarName,
			link.CalendarVersion,
			link.EffectiveDate,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddCalendarLink - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrDuplicateLink
		}
		return fmt.Errorf("%w: AddCalendarLink - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveCalendarLink удаляет привязку календаря по (calendar_id, effective_date)
func (r *Repository) RemoveCalendarLink(ctx context.Context, unitID, calendarID int64, effectiveDate string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unit_calendar_links").
		Where(squirrel.Eq{
			"unit_id":        unitID,
			"calendar_id":    calendarID,
			"effective_date": effectiveDate,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveCalendarLink - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveCalendarLink - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveCalendarLink - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// ListByTenant получает все юниты арендатора (без привязок, для списков)
func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"unit_key",
		"name",
		"unit_number",
		"rate",
		"currency",
		"active",
		"created_at",
		"updated_at",
	).
		From("units").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("unit_key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	for rows.Next() {
		var unit domain.Unit
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&unit.ID,
			&unit.TenantID,
			&unit.UnitKey,
			&unit.Name,
			&unit.UnitNumber,
			&unit.Rate,
			&unit.Currency,
			&unit.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}

		unit.CreatedAt = createdAt.Time
		unit.UpdatedAt = updatedAt.Time
		units = append(units, &unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}
