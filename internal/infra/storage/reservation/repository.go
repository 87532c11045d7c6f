package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL при нарушении exclusion-ограничения.
// Ограничение ux_reservations_no_overlap запрещает пересекающиеся диапазоны
// [start_day, end_day) для одного юнита в статусах hold/confirmed, поэтому
// даже запрос, проскочивший мимо проверки, не создаст двойное бронирование.
const pgExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"unit_id",
	"unit_name",
	"unit_number",
	"calendar_id",
	"calendar_name",
	"calendar_version",
	"to_char(start_day, 'YYYY-MM-DD')",
	"to_char(end_day, 'YYYY-MM-DD')",
	"rate",
	"currency",
	"cancel_hours",
	"cancel_fee",
	"guest",
	"payment",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронирование со снапшотом коммерческих условий.
// Вызывается только внутри сериализуемой транзакции оркестратора —
// проверка пересечений и вставка образуют одну атомарную операцию.
// Нарушение exclusion-ограничения транслируется в ErrOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	guestJSON, paymentJSON, err := marshalSnapshots(res)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"unit_id",
			"unit_name",
			"unit_number",
			"calendar_id",
			"calendar_name",
			"calendar_version",
			"start_day",
			"end_day",
			"rate",
			"currency",
			"cancel_hours",
			"cancel_fee",
			"guest",
			"payment",
			"status",
		).
		Values(
			res.UnitID,
			res.UnitName,
			res.UnitNumber,
			res.CalendarID,
			res.CalendarName,
			res.CalendarVersion,
			res.StartDay,
			res.EndDay,
			res.Rate,
			res.Currency,
			res.CancelHours,
			res.CancelFee,
			guestJSON,
			paymentJSON,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}

	return reservations[0], nil
}

// FindOverlapping получает бронирования юнита, пересекающие полуоткрытый
// диапазон [startDay, endDayExclusive), в указанных статусах.
// Пересечение полуинтервалов: start_day < endExclusive AND end_day > start.
// Внутри транзакции строки блокируются через FOR UPDATE.
func (r *Repository) FindOverlapping(
	ctx context.Context,
	unitID int64,
	startDay, endDayExclusive string,
	statuses []domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Lt{"start_day": endDayExclusive}).
		Where(squirrel.Gt{"end_day": startDay}).
		OrderBy("start_day ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByUnitID получает бронирования юнита, сначала новые.
// По умолчанию отменённые включаются — история остаётся видимой.
func (r *Repository) GetByUnitID(ctx context.Context, unitID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("start_day DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Cancel переводит бронирование в статус cancelled с указанием причины.
// Отменённое бронирование освобождает даты и назад не возвращается.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusHold), string(domain.StatusConfirmed)}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var guestJSON, paymentJSON []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.UnitID,
			&res.UnitName,
			&res.UnitNumber,
			&res.CalendarID,
			&res.CalendarName,
			&res.CalendarVersion,
			&res.StartDay,
			&res.EndDay,
			&res.Rate,
			&res.Currency,
			&res.CancelHours,
			&res.CancelFee,
			&guestJSON,
			&paymentJSON,
			&res.Status,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		if err := unmarshalSnapshots(&res, guestJSON, paymentJSON); err != nil {
			return nil, err
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func marshalSnapshots(res *domain.Reservation) (guest, payment []byte, err error) {
	if res.Guest != nil {
		guest, err = json.Marshal(res.Guest)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: guest: %v", ErrMarshalSnapshot, err)
		}
	}
	if res.Payment != nil {
		payment, err = json.Marshal(res.Payment)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: payment: %v", ErrMarshalSnapshot, err)
		}
	}
	return guest, payment, nil
}

func unmarshalSnapshots(res *domain.Reservation, guestJSON, paymentJSON []byte) error {
	if len(guestJSON) > 0 {
		res.Guest = &domain.GuestSnapshot{}
		if err := json.Unmarshal(guestJSON, res.Guest); err != nil {
			return fmt.Errorf("%w: guest: %v", ErrMarshalSnapshot, err)
		}
	}
	if len(paymentJSON) > 0 {
		res.Payment = &domain.PaymentSnapshot{}
		if err := json.Unmarshal(paymentJSON, res.Payment); err != nil {
			return fmt.Errorf("%w: payment: %v", ErrMarshalSnapshot, err)
		}
	}
	return nil
}
