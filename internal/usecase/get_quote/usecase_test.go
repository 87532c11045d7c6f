package get_quote

import (
	"context"
	"testing"

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
		Active: true,
	}
}

func validRequest() *Request {
	return &Request{
		TenantID: "tenant-1",
		UnitKey:  "villa-3",
		CheckIn:  "2026-07-10",
		CheckOut: "2026-07-13",
	}
}

func TestExecute_QuotesNightsTimesRate(t *testing.T) {
	uc := NewUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 250.0, resp.Nightly)
	assert.Equal(t, 750.0, resp.Total)
	assert.Equal(t, "USD", resp.Currency)

	// Условия отмены берутся из применённой версии календаря
	assert.Equal(t, int64(1), resp.CalendarID)
	assert.Equal(t, "standard", resp.CalendarName)
	assert.Equal(t, 1, resp.CalendarVersion)
	assert.Equal(t, 48, resp.CancelHours)
	assert.Equal(t, 25.0, resp.CancelFee)

	assert.Equal(t, dateutil.Day("2026-07-10"), resp.CheckIn)
	assert.Equal(t, dateutil.Day("2026-07-13"), resp.CheckOut)
}

func TestExecute_OneNightMinimum(t *testing.T) {
	uc := NewUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})

	req := validRequest()
	req.CheckOut = req.CheckIn

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Nights)
	assert.Equal(t, 250.0, resp.Total)
}

func TestExecute_NoCalendarForDate(t *testing.T) {
	unit := testUnit()
	unit.CalendarLinks = []domain.CalendarLink{
		{CalendarID: 1, EffectiveDate: "2026-09-01"},
	}

	uc := NewUseCase(&fakeUnitRepo{unit: unit}, &fakeCalendarRepo{calendar: testCalendar()}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoCalendarForDate)
}

func TestExecute_UnitNotFound(t *testing.T) {
	uc := NewUseCase(&fakeUnitRepo{err: unitRepo.ErrUnitNotFound}, &fakeCalendarRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeUnitRepo{unit: testUnit()}, &fakeCalendarRepo{}, nopLogger{})
	ctx := context.Background()

	req := validRequest()
	req.CheckOut = ""
	_, err := uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.CheckOut = "2026-07-01"
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.TenantID = ""
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
