package calendar

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

var calendarColumns = []string{
	"id",
	"name",
	"version",
	"category",
	"currency",
	"cancel_hours",
	"cancel_fee",
	"lead_min_days",
	"lead_max_days",
	"blackouts",
	"recurring_blackouts",
	"holidays",
	"min_stay_by_weekday",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с версионированными календарями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// holidayRow формат хранения праздничного правила в jsonb
type holidayRow struct {
	Date      string `json:"date"`
	MinNights int    `json:"minNights"`
}

// Create вставляет календарь с уже назначенной версией.
// Нарушение уникальности (name, version) означает, что конкурирующий
// запрос успел занять эту версию — возвращается ErrVersionConflict,
// сервис версионирования перечитывает максимум и повторяет попытку.
func (r *Repository) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blackoutsJSON, holidaysJSON, minStayJSON, err := marshalRules(cal)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("calendars").
		Columns(
			"name",
			"version",
			"category",
			"currency",
			"cancel_hours",
			"cancel_fee",
			"lead_min_days",
			"lead_max_days",
			"blackouts",
			"recurring_blackouts",
			"holidays",
			"min_stay_by_weekday",
			"active",
		).
		Values(
			cal.Name,
			cal.Version,
			cal.Category,
			cal.Currency,
			cal.Cancellation.NoticeHours,
			cal.Cancellation.Fee,
			cal.LeadTime.MinDays,
			cal.LeadTime.MaxDays,
			blackoutsJSON,
			cal.RecurringBlackouts,
			holidaysJSON,
			minStayJSON,
			cal.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cal.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return cal, nil
}

// GetByID получает календарь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCalendar(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByNameVersion получает календарь по паре (name, version)
func (r *Repository) GetByNameVersion(ctx context.Context, name string, version int) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"name": name, "version": version}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByNameVersion - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCalendar(executor.QueryRowContext(ctx, query, args...), "GetByNameVersion")
}

// MaxVersion возвращает максимальную версию календаря для имени (0, если версий нет)
func (r *Repository) MaxVersion(ctx context.Context, name string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(version), 0)").
		From("calendars").
		Where(squirrel.Eq{"name": name}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxVersion - build select query: %v", ErrBuildQuery, err)
	}

	var maxVersion int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxVersion); err != nil {
		return 0, fmt.Errorf("%w: MaxVersion - scan: %v", ErrScanRow, err)
	}

	return maxVersion, nil
}

// ReplaceLatest заменяет содержимое последней версии календаря с именем name,
// сохраняя его идентичность (id, name, version). Снапшоты условий в уже
// созданных бронированиях при этом не меняются — они хранятся по значению.
func (r *Repository) ReplaceLatest(ctx context.Context, name string, cal *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blackoutsJSON, holidaysJSON, minStayJSON, err := marshalRules(cal)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("calendars").
		Set("category", cal.Category).
		Set("currency", cal.Currency).
		Set("cancel_hours", cal.Cancellation.NoticeHours).
		Set("cancel_fee", cal.Cancellation.Fee).
		Set("lead_min_days", cal.LeadTime.MinDays).
		Set("lead_max_days", cal.LeadTime.MaxDays).
		Set("blackouts", blackoutsJSON).
		Set("recurring_blackouts", cal.RecurringBlackouts).
		Set("holidays", holidaysJSON).
		Set("min_stay_by_weekday", minStayJSON).
		Set("active", cal.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Expr("version = (SELECT MAX(version) FROM calendars WHERE name = ?)", name)).
		Suffix("RETURNING " + strings.Join(calendarColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceLatest - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanCalendar(executor.QueryRowContext(ctx, query, args...), "ReplaceLatest")
}

// List получает календари с фильтрацией по имени, категории и активности.
// Сортировка: по имени, затем по убыванию версии (как в каталоге календарей).
func (r *Repository) List(ctx context.Context, name *string, category *domain.CalendarCategory, active *bool) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		OrderBy("name ASC, version DESC")

	if name != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"name": *name})
	}
	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}
	if active != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": *active})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	calendars := make([]*domain.Calendar, 0)
	for rows.Next() {
		cal, err := r.scanCalendarRow(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, cal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return calendars, nil
}

// SetActive переключает флаг активности календаря (мягкая деактивация,
// физическое удаление версий не поддерживается)
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCalendarNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanCalendar(row *sql.Row, op string) (*domain.Calendar, error) {
	cal, err := scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan calendar: %v", ErrScanRow, op, err)
	}
	return cal, nil
}

func (r *Repository) scanCalendarRow(rows *sql.Rows) (*domain.Calendar, error) {
	cal, err := scanInto(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: scanCalendarRow - scan row: %v", ErrScanRow, err)
	}
	return cal, nil
}

func scanInto(scanner rowScanner) (*domain.Calendar, error) {
	var cal domain.Calendar
	var blackoutsJSON, holidaysJSON, minStayJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&cal.ID,
		&cal.Name,
		&cal.Version,
		&cal.Category,
		&cal.Currency,
		&cal.Cancellation.NoticeHours,
		&cal.Cancellation.Fee,
		&cal.LeadTime.MinDays,
		&cal.LeadTime.MaxDays,
		&blackoutsJSON,
		&cal.RecurringBlackouts,
		&holidaysJSON,
		&minStayJSON,
		&cal.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalRules(&cal, blackoutsJSON, holidaysJSON, minStayJSON); err != nil {
		return nil, err
	}

	cal.CreatedAt = createdAt.Time
	cal.UpdatedAt = updatedAt.Time

	return &cal, nil
}

func marshalRules(cal *domain.Calendar) (blackouts, holidays, minStay []byte, err error) {
	blackoutDays := make([]string, 0, len(cal.Blackouts))
	for _, d := range cal.Blackouts {
		blackoutDays = append(blackoutDays, d.String())
	}
	blackouts, err = json.Marshal(blackoutDays)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: blackouts: %v", ErrMarshalRules, err)
	}

	holidayRows := make([]holidayRow, 0, len(cal.Holidays))
	for _, h := range cal.Holidays {
		holidayRows = append(holidayRows, holidayRow{Date: h.Date.String(), MinNights: h.MinNights})
	}
	holidays, err = json.Marshal(holidayRows)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: holidays: %v", ErrMarshalRules, err)
	}

	minStayMap := cal.MinStayByWeekday
	if minStayMap == nil {
		minStayMap = map[string]int{}
	}
	minStay, err = json.Marshal(minStayMap)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: min_stay_by_weekday: %v", ErrMarshalRules, err)
	}

	return blackouts, holidays, minStay, nil
}

func unmarshalRules(cal *domain.Calendar, blackoutsJSON, holidaysJSON, minStayJSON []byte) error {
	var blackoutDays []string
	if err := json.Unmarshal(blackoutsJSON, &blackoutDays); err != nil {
		return fmt.Errorf("%w: blackouts: %v", ErrMarshalRules, err)
	}
	cal.Blackouts = make([]dateutil.Day, 0, len(blackoutDays))
	for _, s := range blackoutDays {
		cal.Blackouts = append(cal.Blackouts, dateutil.Day(s))
	}

	var holidayRows []holidayRow
	if err := json.Unmarshal(holidaysJSON, &holidayRows); err != nil {
		return fmt.Errorf("%w: holidays: %v", ErrMarshalRules, err)
	}
	cal.Holidays = make([]domain.HolidayRule, 0, len(holidayRows))
	for _, h := range holidayRows {
		cal.Holidays = append(cal.Holidays, domain.HolidayRule{
			Date:      dateutil.Day(h.Date),
			MinNights: h.MinNights,
		})
	}

	if err := json.Unmarshal(minStayJSON, &cal.MinStayByWeekday); err != nil {
		return fmt.Errorf("%w: min_stay_by_weekday: %v", ErrMarshalRules, err)
	}

	return nil
}
