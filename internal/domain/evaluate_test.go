package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

func testCalendar() *Calendar {
	return &Calendar{
		ID:       1,
		Name:     "standard",
		Version:  1,
		Category: CategoryReservations,
		Currency: "USD",
		LeadTime: LeadTimeRule{MinDays: 2, MaxDays: 180},
	}
}

func evaluate(t *testing.T, cal *Calendar, req EvaluationRequest) Decision {
	t.Helper()
	decision, err := Evaluate(cal, req)
	require.NoError(t, err)
	return decision
}

func TestEvaluate_Accepts(t *testing.T) {
	decision := evaluate(t, testCalendar(), EvaluationRequest{
		Start:        "2026-07-10",
		EndInclusive: "2026-07-12",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})

	assert.True(t, decision.OK)
	assert.Empty(t, decision.ReasonCodes)
}

func TestEvaluate_LeadTime(t *testing.T) {
	cal := testCalendar()

	// Too soon: check-in tomorrow with a two-day minimum
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-02",
		EndInclusive: "2026-07-04",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonLeadTooSoon}, decision.ReasonCodes)

	// Exactly at the minimum boundary passes
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-05",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)

	// Too far: beyond the maximum horizon
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2027-07-01",
		EndInclusive: "2027-07-03",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonLeadTooFar}, decision.ReasonCodes)
}

func TestEvaluate_ExplicitBlackout(t *testing.T) {
	cal := testCalendar()
	cal.Blackouts = []dateutil.Day{"2026-07-11"}

	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-10",
		EndInclusive: "2026-07-12",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})

	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonBlackout}, decision.ReasonCodes)
}

func TestEvaluate_BlackoutCodeAppearsOnce(t *testing.T) {
	cal := testCalendar()
	cal.Blackouts = []dateutil.Day{"2026-07-10", "2026-07-11", "2026-07-12"}

	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-10",
		EndInclusive: "2026-07-12",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})

	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonBlackout}, decision.ReasonCodes)
}

func TestEvaluate_RecurringBlackout(t *testing.T) {
	cal := testCalendar()
	// Every Sunday is blocked
	cal.RecurringBlackouts = "FREQ=WEEKLY;BYDAY=SU"

	// 2026-07-05 is a Sunday
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-04",
		EndInclusive: "2026-07-06",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.False(t, decision.OK)
	assert.Contains(t, decision.ReasonCodes, ReasonBlackout)

	// A window without Sundays passes
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-06",
		EndInclusive: "2026-07-08",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)
}

func TestEvaluate_InvalidRecurringRule(t *testing.T) {
	cal := testCalendar()
	cal.RecurringBlackouts = "FREQ=NONSENSE"

	_, err := Evaluate(cal, EvaluationRequest{
		Start:        "2026-07-10",
		EndInclusive: "2026-07-12",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.Error(t, err)
}

func TestEvaluate_HolidayMinStay(t *testing.T) {
	cal := testCalendar()
	cal.Holidays = []HolidayRule{{Date: "2026-07-04", MinNights: 3}}

	// Holiday inside the window, fewer nights than required
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-04",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonHolidayMinStay}, decision.ReasonCodes)

	// Enough nights passes
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-06",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)

	// A holiday outside the window has no effect
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-10",
		EndInclusive: "2026-07-11",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)
}

func TestEvaluate_WeekdayMinStay(t *testing.T) {
	cal := testCalendar()
	// Friday check-ins require two nights
	cal.MinStayByWeekday = map[string]int{"Fri": 2}

	// 2026-07-03 is a Friday, one night
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-04",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonMinStay}, decision.ReasonCodes)

	// Two nights passes
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-05",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)

	// Check-in on another weekday is unconstrained
	decision = evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-06",
		EndInclusive: "2026-07-07",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)
}

func TestEvaluate_AppointmentsIgnoreStayRules(t *testing.T) {
	cal := testCalendar()
	cal.Category = CategoryAppointments
	cal.MinStayByWeekday = map[string]int{"Fri": 5}

	// Appointments ignore the window end and weekday minimums
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-03",
		EndInclusive: "2026-07-20",
		Mode:         CategoryAppointments,
		Today:        "2026-07-01",
	})
	assert.True(t, decision.OK)
}

func TestEvaluate_AccumulatesAllViolations(t *testing.T) {
	cal := testCalendar()
	cal.Blackouts = []dateutil.Day{"2026-07-02"}
	cal.MinStayByWeekday = map[string]int{"Thu": 3}

	// 2026-07-02 is a Thursday: too soon, blacked out and under the stay minimum
	decision := evaluate(t, cal, EvaluationRequest{
		Start:        "2026-07-02",
		EndInclusive: "2026-07-03",
		Mode:         CategoryReservations,
		Today:        "2026-07-01",
	})

	assert.False(t, decision.OK)
	assert.Equal(t, []ReasonCode{ReasonLeadTooSoon, ReasonBlackout, ReasonMinStay}, decision.ReasonCodes)
}

func TestCalendar_MinStayFor(t *testing.T) {
	cal := testCalendar()
	cal.MinStayByWeekday = map[string]int{"Fri": 2}

	assert.Equal(t, 2, cal.MinStayFor("Fri"))
	// Unlisted weekdays fall back to the default minimum
	assert.Equal(t, DefaultMinStay, cal.MinStayFor("Mon"))
}

func TestEvaluate_ZeroEndDefaultsToStart(t *testing.T) {
	decision := evaluate(t, testCalendar(), EvaluationRequest{
		Start: "2026-07-10",
		Mode:  CategoryReservations,
		Today: "2026-07-01",
	})

	assert.True(t, decision.OK)
}
