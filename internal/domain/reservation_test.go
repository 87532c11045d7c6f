package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangesOverlap(t *testing.T) {
	// Half-open ranges: touching endpoints do not overlap
	assert.False(t, RangesOverlap("2026-07-01", "2026-07-05", "2026-07-05", "2026-07-08"))
	assert.False(t, RangesOverlap("2026-07-05", "2026-07-08", "2026-07-01", "2026-07-05"))

	// Partial overlap
	assert.True(t, RangesOverlap("2026-07-01", "2026-07-05", "2026-07-04", "2026-07-08"))

	// Containment
	assert.True(t, RangesOverlap("2026-07-01", "2026-07-10", "2026-07-03", "2026-07-05"))
	assert.True(t, RangesOverlap("2026-07-03", "2026-07-05", "2026-07-01", "2026-07-10"))

	// Identical ranges
	assert.True(t, RangesOverlap("2026-07-01", "2026-07-05", "2026-07-01", "2026-07-05"))

	// Disjoint
	assert.False(t, RangesOverlap("2026-07-01", "2026-07-03", "2026-07-10", "2026-07-12"))
}

func TestReservation_IsBlocking(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusHold}).IsBlocking())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).IsBlocking())
	assert.False(t, (&Reservation{Status: StatusCancelled}).IsBlocking())
}

func TestReservation_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusHold}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: StatusCancelled}).CanBeCancelled())
}

func TestReservation_Nights(t *testing.T) {
	// EndDay is exclusive: [01, 05) spans four days and three nights
	res := &Reservation{StartDay: "2026-07-01", EndDay: "2026-07-05"}
	assert.Equal(t, 3, res.Nights())

	// One night
	res = &Reservation{StartDay: "2026-07-01", EndDay: "2026-07-02"}
	assert.Equal(t, 1, res.Nights())
}
