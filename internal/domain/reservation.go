package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusHold      ReservationStatus = "hold"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// BlockingStatuses are the statuses that occupy a unit's dates.
// Cancelled reservations never block.
var BlockingStatuses = []ReservationStatus{
	StatusHold,
	StatusConfirmed,
}

// GuestSnapshot is contact data captured at commit time. The engine treats
// it as opaque; it is never inspected or validated beyond marshalling.
type GuestSnapshot struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentSnapshot holds tokenized payment references and non-sensitive card
// metadata. PAN and CVC are never stored.
type PaymentSnapshot struct {
	Provider   string  `json:"provider,omitempty"`
	CustomerID string  `json:"customerId,omitempty"`
	MethodID   string  `json:"methodId,omitempty"`
	IntentID   string  `json:"intentId,omitempty"`
	Brand      string  `json:"brand,omitempty"`
	Last4      string  `json:"last4,omitempty"`
	ExpMonth   int     `json:"expMonth,omitempty"`
	ExpYear    int     `json:"expYear,omitempty"`
	HoldAmount float64 `json:"holdAmount,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

// Reservation is a committed, date-bounded occupancy of a unit.
// StartDay is inclusive, EndDay is exclusive: a one-night stay has
// EndDay = StartDay + 1. Commercial terms are a value snapshot taken at
// commit time; later calendar edits never change them.
type Reservation struct {
	ID int64

	UnitID     int64
	UnitName   string
	UnitNumber string

	CalendarID      int64
	CalendarName    string
	CalendarVersion int

	StartDay dateutil.Day
	EndDay   dateutil.Day // exclusive

	Rate        float64
	Currency    string
	CancelHours int
	CancelFee   float64

	Guest   *GuestSnapshot
	Payment *PaymentSnapshot

	Status ReservationStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking reports whether the reservation occupies its dates
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusHold || r.Status == StatusConfirmed
}

// CanBeCancelled reports whether the reservation may transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusHold || r.Status == StatusConfirmed
}

// Nights returns the number of nights the reservation spans
func (r *Reservation) Nights() int {
	return dateutil.Nights(r.StartDay, r.EndDay.AddDays(-1))
}

// RangesOverlap reports whether two half-open day ranges [s1, e1) and
// [s2, e2) intersect. Touching endpoints do not overlap.
func RangesOverlap(s1, e1, s2, e2 dateutil.Day) bool {
	return s1.Before(e2) && s2.Before(e1)
}
