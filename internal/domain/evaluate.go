package domain

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// EvaluationRequest is a proposed date range checked against a calendar.
// EndInclusive is the last occupied day (the check-out date as guests
// understand it). Appointments are single-day events: EndInclusive is
// ignored and nights is fixed at one.
type EvaluationRequest struct {
	Start        dateutil.Day
	EndInclusive dateutil.Day
	Mode         CalendarCategory
	Today        dateutil.Day
}

// Evaluate checks the request against every applicable calendar rule and
// reports all violations, never stopping at the first one. Code order
// follows check order: lead time, blackout, holiday min-stay, weekday
// min-stay. Each code appears at most once.
//
// Pure: same calendar, request and today always produce the same decision.
func Evaluate(cal *Calendar, req EvaluationRequest) (Decision, error) {
	codes := make([]ReasonCode, 0, 4)

	endInclusive := req.EndInclusive
	if req.Mode == CategoryAppointments || endInclusive.IsZero() {
		endInclusive = req.Start
	}

	// Lead time: whole-day difference between today and the start day.
	leadDays := dateutil.DaysBetween(req.Today, req.Start)
	if leadDays < cal.LeadTime.MinDays {
		codes = append(codes, ReasonLeadTooSoon)
	}
	if leadDays > cal.LeadTime.MaxDays {
		codes = append(codes, ReasonLeadTooFar)
	}

	requested := dateutil.ExpandInclusive(req.Start, endInclusive)
	nights := dateutil.Nights(req.Start, endInclusive)

	// Blackouts: explicit set union recurring expansion over the request window.
	blocked, err := cal.BlackoutDaysWithin(req.Start, endInclusive)
	if err != nil {
		return Decision{}, err
	}
	for _, d := range requested {
		if blocked[d] {
			codes = append(codes, ReasonBlackout)
			break
		}
	}

	// Holiday minimum stay: any holiday inside the window raises the floor.
	for _, h := range cal.Holidays {
		minNights := h.MinNights
		if minNights < 1 {
			minNights = 1
		}
		if containsDay(requested, h.Date) && nights < minNights {
			codes = append(codes, ReasonHolidayMinStay)
			break
		}
	}

	// Weekday minimum stay applies to reservations only.
	if req.Mode == CategoryReservations {
		if nights < cal.MinStayFor(req.Start.Weekday()) {
			codes = append(codes, ReasonMinStay)
		}
	}

	if len(codes) > 0 {
		return Reject(codes...), nil
	}
	return Accept(), nil
}

func containsDay(days []dateutil.Day, target dateutil.Day) bool {
	for _, d := range days {
		if d == target {
			return true
		}
	}
	return false
}
