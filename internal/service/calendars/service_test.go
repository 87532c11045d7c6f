package calendars

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// fakeCalendarRepo in-memory репозиторий для тестов версионирования
type fakeCalendarRepo struct {
	byName     map[string][]*domain.Calendar
	nextID     int64
	failwith   error // возвращается первыми failCount вызовами Create
	failCount  int
	createCall int
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{byName: map[string][]*domain.Calendar{}, nextID: 1}
}

func (f *fakeCalendarRepo) Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error) {
	f.createCall++
	if f.failwith != nil && f.createCall <= f.failCount {
		// Эмуляция проигранной гонки: кто-то успел занять версию
		f.byName[cal.Name] = append(f.byName[cal.Name], &domain.Calendar{
			ID: f.nextID, Name: cal.Name, Version: cal.Version,
		})
		f.nextID++
		return nil, f.failwith
	}
	out := *cal
	out.ID = f.nextID
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.nextID++
	f.byName[cal.Name] = append(f.byName[cal.Name], &out)
	return &out, nil
}

func (f *fakeCalendarRepo) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	for _, versions := range f.byName {
		for _, cal := range versions {
			if cal.ID == id {
				return cal, nil
			}
		}
	}
	return nil, calendarRepo.ErrCalendarNotFound
}

func (f *fakeCalendarRepo) GetByNameVersion(ctx context.Context, name string, version int) (*domain.Calendar, error) {
	for _, cal := range f.byName[name] {
		if cal.Version == version {
			return cal, nil
		}
	}
	return nil, calendarRepo.ErrCalendarNotFound
}

func (f *fakeCalendarRepo) MaxVersion(ctx context.Context, name string) (int, error) {
	maxV := 0
	for _, cal := range f.byName[name] {
		if cal.Version > maxV {
			maxV = cal.Version
		}
	}
	return maxV, nil
}

func (f *fakeCalendarRepo) ReplaceLatest(ctx context.Context, name string, cal *domain.Calendar) (*domain.Calendar, error) {
	versions := f.byName[name]
	if len(versions) == 0 {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	latest := versions[0]
	for _, v := range versions {
		if v.Version > latest.Version {
			latest = v
		}
	}
	updated := *cal
	updated.ID = latest.ID
	updated.Version = latest.Version
	updated.CreatedAt = latest.CreatedAt
	updated.UpdatedAt = time.Now()
	*latest = updated
	return latest, nil
}

func (f *fakeCalendarRepo) List(ctx context.Context, name *string, category *domain.CalendarCategory, active *bool) ([]*domain.Calendar, error) {
	out := []*domain.Calendar{}
	for n, versions := range f.byName {
		if name != nil && n != *name {
			continue
		}
		for _, cal := range versions {
			if category != nil && cal.Category != *category {
				continue
			}
			if active != nil && cal.Active != *active {
				continue
			}
			out = append(out, cal)
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) SetActive(ctx context.Context, id int64, active bool) error {
	cal, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cal.Active = active
	return nil
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func saveRequest(name string) *models.SaveCalendarRequest {
	return &models.SaveCalendarRequest{
		Name:     name,
		Category: "reservations",
		LeadTime: &models.LeadTimeInput{MinDays: ptr.Ptr(1), MaxDays: ptr.Ptr(180)},
	}
}

func TestCreateVersion_FirstVersionIsOne(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.CreateVersion(context.Background(), saveRequest("standard"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, "standard", resp.Name)
	assert.True(t, resp.Active)
}

func TestCreateVersion_IncrementsMax(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := NewService(repo, nopLogger{})

	ctx := context.Background()
	_, err := svc.CreateVersion(ctx, saveRequest("standard"))
	require.NoError(t, err)
	_, err = svc.CreateVersion(ctx, saveRequest("standard"))
	require.NoError(t, err)

	resp, err := svc.CreateVersion(ctx, saveRequest("standard"))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Version)

	// Версии другой линейки независимы
	other, err := svc.CreateVersion(ctx, saveRequest("seasonal"))
	require.NoError(t, err)
	assert.Equal(t, 1, other.Version)
}

func TestCreateVersion_RetriesOnConflict(t *testing.T) {
	repo := newFakeCalendarRepo()
	repo.failwith = calendarRepo.ErrVersionConflict
	repo.failCount = 1
	svc := NewService(repo, nopLogger{})

	resp, err := svc.CreateVersion(context.Background(), saveRequest("standard"))
	require.NoError(t, err)

	// Первая попытка проиграла гонку, вторая взяла свежий максимум
	assert.Equal(t, 2, repo.createCall)
	assert.Equal(t, 2, resp.Version)
}

func TestCreateVersion_ExhaustsRetries(t *testing.T) {
	repo := newFakeCalendarRepo()
	repo.failwith = calendarRepo.ErrVersionConflict
	repo.failCount = domain.MaxVersionRetries
	svc := NewService(repo, nopLogger{})

	_, err := svc.CreateVersion(context.Background(), saveRequest("standard"))
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, domain.MaxVersionRetries, repo.createCall)
}

func TestOverwriteLatest_PreservesIdentity(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	created, err := svc.CreateVersion(ctx, saveRequest("standard"))
	require.NoError(t, err)

	req := saveRequest("standard")
	req.Blackouts = []string{"2026-12-25"}
	updated, err := svc.OverwriteLatest(ctx, req)
	require.NoError(t, err)

	// Имя и версия неизменны, содержимое заменено
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Version, updated.Version)
	assert.Equal(t, []string{"2026-12-25"}, updated.Blackouts)
}

func TestOverwriteLatest_FallsBackToCreate(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.OverwriteLatest(context.Background(), saveRequest("brand-new"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
}

func TestCreateVersion_Validation(t *testing.T) {
	svc := NewService(newFakeCalendarRepo(), nopLogger{})
	ctx := context.Background()

	req := saveRequest("")
	_, err := svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.Category = "meetings"
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.LeadTime = &models.LeadTimeInput{MinDays: ptr.Ptr(30), MaxDays: ptr.Ptr(7)}
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.RecurringBlackouts = "FREQ=NONSENSE"
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.MinStayByWeekday = map[string]int{"Monday": 2}
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.Holidays = []models.HolidayInput{{Date: "2026-07-04", MinNights: 0}}
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = saveRequest("standard")
	req.Blackouts = []string{"not-a-date"}
	_, err = svc.CreateVersion(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_FiltersByCategoryAndActive(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.CreateVersion(ctx, saveRequest("standard"))
	require.NoError(t, err)

	appt := saveRequest("walkins")
	appt.Category = "appointments"
	created, err := svc.CreateVersion(ctx, appt)
	require.NoError(t, err)

	resp, err := svc.List(ctx, &models.ListCalendarsRequest{Category: ptr.Ptr("appointments")})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "walkins", resp.Calendars[0].Name)

	// Деактивированный календарь отфильтровывается по active=true
	require.NoError(t, svc.SetActive(ctx, created.ID, false))
	resp, err = svc.List(ctx, &models.ListCalendarsRequest{Active: ptr.Ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	// Неизвестная категория отклоняется
	_, err = svc.List(ctx, &models.ListCalendarsRequest{Category: ptr.Ptr("meetings")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetActive_NotFound(t *testing.T) {
	svc := NewService(newFakeCalendarRepo(), nopLogger{})
	err := svc.SetActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}
