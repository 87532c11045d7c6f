package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	unitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// fakeUnitRepo фейковый репозиторий юнитов
type fakeUnitRepo struct {
	unit *domain.Unit
	err  error
}

func (f *fakeUnitRepo) GetByTenantAndKey(ctx context.Context, tenantID, unitKey string) (*domain.Unit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.unit, nil
}

// fakeCalendarRepo фейковый репозиторий календарей
type fakeCalendarRepo struct {
	calendar *domain.Calendar
	err      error
}

func (f *fakeCalendarRepo) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.calendar, nil
}

// fakeReservationRepo фейковый репозиторий бронирований
type fakeReservationRepo struct {
	overlapping []*domain.Reservation
	calls       int
}

func (f *fakeReservationRepo) FindOverlapping(ctx context.Context, unitID int64, startDay, endDayExclusive string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.calls++
	return f.overlapping, nil
}

// fakeTimeProvider фиксированное время для тестов
type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
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
		CalendarLinks: []domain.CalendarLink{
			{CalendarID: 1, CalendarName: "standard", CalendarVersion: 1, EffectiveDate: "2026-01-01"},
		},
		Active: true,
	}
}

func testCalendar() *domain.Calendar {
	return &domain.Calendar{
		ID:       1,
		Name:     "standard",
		Version:  1,
		Category: domain.CategoryReservations,
		Currency: "USD",
		Cancellation: domain.CancellationPolicy{
			NoticeHours: 48,
			Fee:         25,
		},
		LeadTime: domain.LeadTimeRule{MinDays: 0, MaxDays: 365},
		Active:   true,
	}
}

func newTestUseCase(units *fakeUnitRepo, calendars *fakeCalendarRepo, reservations *fakeReservationRepo) *UseCase {
	uc := NewUseCase(units, calendars, reservations, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		CheckIn:  "2026-07-10",
		CheckOut: "2026-07-13",
	}
}

func TestExecute_Available(t *testing.T) {
	uc := newTestUseCase(
		&fakeUnitRepo{unit: testUnit()},
		&fakeCalendarRepo{calendar: testCalendar()},
		&fakeReservationRepo{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Empty(t, resp.ReasonCodes)
	assert.Equal(t, 3, resp.Nights)

	require.NotNil(t, resp.Unit)
	assert.Equal(t, "villa-3", resp.Unit.UnitKey)
	assert.Equal(t, 250.0, resp.Unit.Rate)

	require.NotNil(t, resp.Calendar)
	assert.Equal(t, "standard", resp.Calendar.Name)
	assert.Equal(t, 1, resp.Calendar.Version)
	assert.Equal(t, 48, resp.Calendar.CancelHours)
}

func TestExecute_RejectedByRules(t *testing.T) {
	cal := testCalendar()
	cal.Blackouts = []dateutil.Day{"2026-07-11"}
	reservations := &fakeReservationRepo{}

	uc := newTestUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{calendar: cal}, reservations)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.OK)
	assert.Equal(t, []domain.ReasonCode{domain.ReasonBlackout}, resp.ReasonCodes)
	// Пересечения не проверяются, если правила уже отказали
	assert.Equal(t, 0, reservations.calls)
}

func TestExecute_OverlapWithConflicts(t *testing.T) {
	existing := &domain.Reservation{
		ID:       9,
		StartDay: "2026-07-12",
		EndDay:   "2026-07-15",
		Status:   domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeUnitRepo{unit: testUnit()},
		&fakeCalendarRepo{calendar: testCalendar()},
		&fakeReservationRepo{overlapping: []*domain.Reservation{existing}},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.OK)
	assert.Equal(t, []domain.ReasonCode{domain.ReasonOverlap}, resp.ReasonCodes)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(9), resp.Conflicts[0].ReservationID)
	assert.Equal(t, "confirmed", resp.Conflicts[0].Status)
}

func TestExecute_NoCalendarForDate(t *testing.T) {
	unit := testUnit()
	unit.CalendarLinks = []domain.CalendarLink{
		{CalendarID: 1, EffectiveDate: "2026-09-01"},
		{CalendarID: 2, EffectiveDate: "2026-08-01"},
	}

	uc := newTestUseCase(&fakeUnitRepo{unit: unit}, &fakeCalendarRepo{}, &fakeReservationRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.OK)
	assert.Equal(t, []domain.ReasonCode{domain.ReasonNoCalendarForDate}, resp.ReasonCodes)
	require.NotNil(t, resp.NextEffectiveFrom)
	assert.Equal(t, dateutil.Day("2026-08-01"), *resp.NextEffectiveFrom)
}

func TestExecute_AppointmentsModeUsesCheckInOnly(t *testing.T) {
	cal := testCalendar()
	cal.Category = domain.CategoryAppointments
	reservations := &fakeReservationRepo{}

	uc := newTestUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{calendar: cal}, reservations)

	req := validRequest()
	req.CheckOut = ""
	req.Mode = domain.CategoryAppointments

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Nights)
}

func TestExecute_UnitNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeUnitRepo{err: unitRepo.ErrUnitNotFound}, &fakeCalendarRepo{}, &fakeReservationRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{}, &fakeReservationRepo{})

	req := validRequest()
	req.CheckIn = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CheckOut = "2026-07-01"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Mode = "meetings"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
