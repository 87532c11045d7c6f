package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
	"github.com/m04kA/SMC-ReservationService/pkg/recurrence"
)

// CalendarCategory determines which rule set applies to a request
type CalendarCategory string

const (
	CategoryReservations CalendarCategory = "reservations"
	CategoryAppointments CalendarCategory = "appointments"
)

// IsValid reports whether the category is one of the known values
func (c CalendarCategory) IsValid() bool {
	return c == CategoryReservations || c == CategoryAppointments
}

// LeadTimeRule bounds how far ahead of check-in a request may arrive, in whole days
type LeadTimeRule struct {
	MinDays int
	MaxDays int
}

// HolidayRule raises the minimum stay when the holiday date falls inside a request
type HolidayRule struct {
	Date      dateutil.Day
	MinNights int
}

// CancellationPolicy is snapshotted onto reservations at commit time
type CancellationPolicy struct {
	NoticeHours int
	Fee         float64
}

// Calendar is a named, versioned availability policy.
// The (Name, Version) pair is its identity and is immutable once created:
// edits either allocate a new version or replace the content of the latest
// version, never its identity. Calendars are soft-deactivated, not deleted.
type Calendar struct {
	ID       int64
	Name     string
	Version  int
	Category CalendarCategory
	Currency string

	Cancellation CancellationPolicy
	LeadTime     LeadTimeRule

	// Blackouts are explicit blacked-out days; RecurringBlackouts is an
	// optional RRULE string expanded on demand within a query window.
	Blackouts          []dateutil.Day
	RecurringBlackouts string

	Holidays []HolidayRule

	// MinStayByWeekday maps stable weekday keys ("Sun".."Sat") to minimum
	// nights for stays starting on that weekday. Reservations category only.
	MinStayByWeekday map[string]int

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinStayFor returns the minimum nights for a stay starting on the given
// weekday key. Missing entries default to one night.
func (c *Calendar) MinStayFor(weekday string) int {
	if n, ok := c.MinStayByWeekday[weekday]; ok && n > 0 {
		return n
	}
	return DefaultMinStay
}

// BlackoutDaysWithin returns the union of the explicit blackout set and the
// expanded recurring blackouts, restricted to [from, to] inclusive.
func (c *Calendar) BlackoutDaysWithin(from, to dateutil.Day) (map[dateutil.Day]bool, error) {
	blocked := make(map[dateutil.Day]bool)

	for _, d := range c.Blackouts {
		if !d.Before(from) && !d.After(to) {
			blocked[d] = true
		}
	}

	if c.RecurringBlackouts != "" {
		expanded, err := recurrence.ExpandWithin(c.RecurringBlackouts, from, to)
		if err != nil {
			return nil, err
		}
		for _, d := range expanded {
			blocked[d] = true
		}
	}

	return blocked, nil
}
