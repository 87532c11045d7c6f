package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

// fakeUnitRepo in-memory репозиторий юнитов
type fakeUnitRepo struct {
	byID   map[int64]*domain.Unit
	nextID int64
}

func newFakeUnitRepo(units ...*domain.Unit) *fakeUnitRepo {
	f := &fakeUnitRepo{byID: map[int64]*domain.Unit{}, nextID: 1}
	for _, u := range units {
		f.byID[u.ID] = u
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
	}
	return f
}

func (f *fakeUnitRepo) Create(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	for _, u := range f.byID {
		if u.TenantID == unit.TenantID && u.UnitKey == unit.UnitKey {
			return nil, unitRepo.ErrDuplicateUnitKey
		}
	}
	out := *unit
	out.ID = f.nextID
	f.nextID++
	f.byID[out.ID] = &out
	return &out, nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, id int64) (*domain.Unit, error) {
	unit, ok := f.byID[id]
	if !ok {
		return nil, unitRepo.ErrUnitNotFound
	}
	return unit, nil
}

func (f *fakeUnitRepo) GetByTenantAndKey(ctx context.Context, tenantID, unitKey string) (*domain.Unit, error) {
	for _, u := range f.byID {
		if u.TenantID == tenantID && u.UnitKey == unitKey {
			return u, nil
		}
	}
	return nil, unitRepo.ErrUnitNotFound
}

func (f *fakeUnitRepo) AddCalendarLink(ctx context.Context, unitID int64, link domain.CalendarLink) error {
	unit, ok := f.byID[unitID]
	if !ok {
		return unitRepo.ErrUnitNotFound
	}
	for _, l := range unit.CalendarLinks {
		if l.CalendarID == link.CalendarID && l.EffectiveDate == link.EffectiveDate {
			return unitRepo.ErrDuplicateLink
		}
	}
	unit.CalendarLinks = append(unit.CalendarLinks, link)
	return nil
}

func (f *fakeUnitRepo) RemoveCalendarLink(ctx context.Context, unitID, calendarID int64, effectiveDate string) error {
	unit, ok := f.byID[unitID]
	if !ok {
		return unitRepo.ErrUnitNotFound
	}
	for i, l := range unit.CalendarLinks {
		if l.CalendarID == calendarID && l.EffectiveDate.String() == effectiveDate {
			unit.CalendarLinks = append(unit.CalendarLinks[:i], unit.CalendarLinks[i+1:]...)
			return nil
		}
	}
	return unitRepo.ErrLinkNotFound
}

func (f *fakeUnitRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Unit, error) {
	out := []*domain.Unit{}
	for _, u := range f.byID {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeCalendarRepo фейковый репозиторий календарей
type fakeCalendarRepo struct {
	calendar *domain.Calendar
}

func (f *fakeCalendarRepo) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	if f.calendar == nil || f.calendar.ID != id {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return f.calendar, nil
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testUnit() *domain.Unit {
	return &domain.Unit{
		ID:       7,
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		Name:     "Villa",
		Rate:     250,
		Currency: "USD",
		Active:   true,
	}
}

func testCalendar() *domain.Calendar {
	return &domain.Calendar{ID: 1, Name: "standard", Version: 2, Active: true}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := NewService(newFakeUnitRepo(), &fakeCalendarRepo{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateUnitRequest{
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		Name:     "Villa",
		Rate:     250,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.True(t, resp.Active)
	assert.Empty(t, resp.CalendarLinks)
}

func TestCreate_DuplicateKey(t *testing.T) {
	svc := NewService(newFakeUnitRepo(testUnit()), &fakeCalendarRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateUnitRequest{
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		Name:     "Another villa",
	})
	assert.ErrorIs(t, err, ErrDuplicateUnitKey)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeUnitRepo(), &fakeCalendarRepo{}, nopLogger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateUnitRequest{TenantID: "tenant-1", Name: "Villa"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateUnitRequest{TenantID: "tenant-1", UnitKey: "villa-3", Name: "Villa", Rate: -10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_ForeignTenantLooksLikeNotFound(t *testing.T) {
	svc := NewService(newFakeUnitRepo(testUnit()), &fakeCalendarRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), "tenant-2", 7)
	assert.ErrorIs(t, err, ErrUnitNotFound)

	resp, err := svc.GetByID(context.Background(), "tenant-1", 7)
	require.NoError(t, err)
	assert.Equal(t, "villa-3", resp.UnitKey)
}

func TestAddCalendarLink_DenormalizesNameAndVersion(t *testing.T) {
	repo := newFakeUnitRepo(testUnit())
	svc := NewService(repo, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})

	resp, err := svc.AddCalendarLink(context.Background(), "tenant-1", 7, &models.AddLinkRequest{
		CalendarID:    1,
		EffectiveDate: "2026-06-01",
	})
	require.NoError(t, err)

	require.Len(t, resp.CalendarLinks, 1)
	link := resp.CalendarLinks[0]
	assert.Equal(t, int64(1), link.CalendarID)
	assert.Equal(t, "standard", link.CalendarName)
	assert.Equal(t, 2, link.CalendarVersion)
	assert.Equal(t, "2026-06-01", link.EffectiveDate)
}

func TestAddCalendarLink_DuplicateEffectiveDate(t *testing.T) {
	repo := newFakeUnitRepo(testUnit())
	svc := NewService(repo, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})
	ctx := context.Background()

	req := &models.AddLinkRequest{CalendarID: 1, EffectiveDate: "2026-06-01"}
	_, err := svc.AddCalendarLink(ctx, "tenant-1", 7, req)
	require.NoError(t, err)

	_, err = svc.AddCalendarLink(ctx, "tenant-1", 7, req)
	assert.ErrorIs(t, err, ErrDuplicateLink)
}

func TestAddCalendarLink_CalendarNotFound(t *testing.T) {
	svc := NewService(newFakeUnitRepo(testUnit()), &fakeCalendarRepo{}, nopLogger{})

	_, err := svc.AddCalendarLink(context.Background(), "tenant-1", 7, &models.AddLinkRequest{
		CalendarID:    99,
		EffectiveDate: "2026-06-01",
	})
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestAddCalendarLink_InvalidDate(t *testing.T) {
	svc := NewService(newFakeUnitRepo(testUnit()), &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})

	_, err := svc.AddCalendarLink(context.Background(), "tenant-1", 7, &models.AddLinkRequest{
		CalendarID:    1,
		EffectiveDate: "01.06.2026",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveCalendarLink(t *testing.T) {
	repo := newFakeUnitRepo(testUnit())
	svc := NewService(repo, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})
	ctx := context.Background()

	_, err := svc.AddCalendarLink(ctx, "tenant-1", 7, &models.AddLinkRequest{
		CalendarID:    1,
		EffectiveDate: "2026-06-01",
	})
	require.NoError(t, err)

	err = svc.RemoveCalendarLink(ctx, "tenant-1", 7, &models.RemoveLinkRequest{
		CalendarID:    1,
		EffectiveDate: "2026-06-01",
	})
	require.NoError(t, err)

	err = svc.RemoveCalendarLink(ctx, "tenant-1", 7, &models.RemoveLinkRequest{
		CalendarID:    1,
		EffectiveDate: "2026-06-01",
	})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestList_ScopedToTenant(t *testing.T) {
	other := testUnit()
	other.ID = 8
	other.TenantID = "tenant-2"
	other.UnitKey = "loft-1"
	repo := newFakeUnitRepo(testUnit(), other)
	svc := NewService(repo, &fakeCalendarRepo{}, nopLogger{})

	resp, err := svc.List(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "villa-3", resp.Units[0].UnitKey)
}
