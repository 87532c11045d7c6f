package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
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
	createErr   error
	created     *domain.Reservation
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *res
	out.ID = 42
	out.CreatedAt = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	f.created = &out
	return &out, nil
}

func (f *fakeReservationRepo) FindOverlapping(ctx context.Context, unitID int64, startDay, endDayExclusive string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.overlapping, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

func newTestUseCase(units *fakeUnitRepo, calendars *fakeCalendarRepo, reservations *fakeReservationRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(units, calendars, reservations, tx, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		CheckIn:  "2026-07-10",
		CheckOut: "2026-07-13",
		Guest:    &domain.GuestSnapshot{FirstName: "Ada", Email: "ada@example.com"},
		Payment:  &domain.PaymentSnapshot{Provider: "stripe", MethodID: "pm_123", Last4: "4242"},
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	units := &fakeUnitRepo{unit: testUnit()}
	calendars := &fakeCalendarRepo{calendar: testCalendar()}
	reservations := &fakeReservationRepo{}
	tx := &fakeTxManager{}

	uc := newTestUseCase(units, calendars, reservations, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, resp.OK)
	require.NotNil(t, resp.Reservation)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(42), resp.Reservation.ID)
	assert.Equal(t, "confirmed", resp.Reservation.Status)
	assert.Equal(t, 3, resp.Reservation.Nights)
	assert.Equal(t, 750.0, resp.Reservation.Total)

	// В хранилище уходит эксклюзивный конец диапазона
	require.NotNil(t, reservations.created)
	assert.Equal(t, "2026-07-10", reservations.created.StartDay.String())
	assert.Equal(t, "2026-07-14", reservations.created.EndDay.String())
}

func TestExecute_SnapshotsCommercialTerms(t *testing.T) {
	units := &fakeUnitRepo{unit: testUnit()}
	calendars := &fakeCalendarRepo{calendar: testCalendar()}
	reservations := &fakeReservationRepo{}

	uc := newTestUseCase(units, calendars, reservations, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, resp.OK)

	created := reservations.created
	require.NotNil(t, created)

	// Условия снапшотятся на момент коммита
	assert.Equal(t, 250.0, created.Rate)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, 48, created.CancelHours)
	assert.Equal(t, 25.0, created.CancelFee)
	assert.Equal(t, int64(1), created.CalendarID)
	assert.Equal(t, "standard", created.CalendarName)
	assert.Equal(t, 1, created.CalendarVersion)

	// Снапшоты гостя и оплаты проходят насквозь
	require.NotNil(t, created.Guest)
	assert.Equal(t, "Ada", created.Guest.FirstName)
	require.NotNil(t, created.Payment)
	assert.Equal(t, "pm_123", created.Payment.MethodID)
}

func TestExecute_RejectedByRules(t *testing.T) {
	cal := testCalendar()
	cal.Blackouts = []dateutil.Day{"2026-07-11"}
	units := &fakeUnitRepo{unit: testUnit()}
	calendars := &fakeCalendarRepo{calendar: cal}
	reservations := &fakeReservationRepo{}

	uc := newTestUseCase(units, calendars, reservations, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.OK)
	assert.Equal(t, []domain.ReasonCode{domain.ReasonBlackout}, resp.ReasonCodes)
	assert.Nil(t, resp.Reservation)
	assert.Nil(t, reservations.created)
}

func TestExecute_OverlapDetectedByQuery(t *testing.T) {
	units := &fakeUnitRepo{unit: testUnit()}
	calendars := &fakeCalendarRepo{calendar: testCalendar()}
	reservations := &fakeReservationRepo{
		overlapping: []*domain.Reservation{
			{ID: 9, StartDay: "2026-07-12", EndDay: "2026-07-15", Status: domain.StatusConfirmed},
		},
	}

	uc := newTestUseCase(units, calendars, reservations, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Nil(t, reservations.created)
}

func TestExecute_OverlapConstraintOnInsert(t *testing.T) {
	units := &fakeUnitRepo{unit: testUnit()}
	calendars := &fakeCalendarRepo{calendar: testCalendar()}
	reservations := &fakeReservationRepo{createErr: reservationRepo.ErrOverlap}

	uc := newTestUseCase(units, calendars, reservations, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestExecute_UnitNotFound(t *testing.T) {
	units := &fakeUnitRepo{err: unitRepo.ErrUnitNotFound}
	uc := newTestUseCase(units, &fakeCalendarRepo{}, &fakeReservationRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestExecute_NoCalendarForDate(t *testing.T) {
	unit := testUnit()
	unit.CalendarLinks = []domain.CalendarLink{
		{CalendarID: 1, EffectiveDate: "2026-09-01"},
	}
	units := &fakeUnitRepo{unit: unit}

	uc := newTestUseCase(units, &fakeCalendarRepo{calendar: testCalendar()}, &fakeReservationRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCalendarForDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{}, &fakeReservationRepo{}, &fakeTxManager{})

	req := validRequest()
	req.CheckOut = "2026-07-01" // раньше заезда
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CheckIn = "10.07.2026"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.UnitKey = ""
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
