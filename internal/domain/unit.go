package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// CalendarLink attaches a calendar version to a unit from an effective date
// onward. Name and Version are denormalized from the calendar so listings
// don't need a join. Links are appended or removed, never edited in place.
type CalendarLink struct {
	CalendarID      int64
	CalendarName    string
	CalendarVersion int
	EffectiveDate   dateutil.Day
}

// Unit is a bookable resource (room, villa, cabin and so on), identified
// within a tenant by its UnitKey.
type Unit struct {
	ID         int64
	TenantID   string
	UnitKey    string
	Name       string
	UnitNumber string
	Rate       float64
	Currency   string

	// CalendarLinks reference the calendar versions that apply to this unit
	// over time. For any two links of the same calendar lineage the effective
	// dates are distinct, so resolution is always deterministic.
	CalendarLinks []CalendarLink

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
