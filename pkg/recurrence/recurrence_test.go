package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

func TestExpandWithin_WeeklyByDay(t *testing.T) {
	// Воскресенья июля 2026: 5, 12, 19, 26
	days, err := ExpandWithin("FREQ=WEEKLY;BYDAY=SU",
		dateutil.MustParse("2026-07-01"), dateutil.MustParse("2026-07-31"))
	require.NoError(t, err)

	assert.Equal(t, []dateutil.Day{
		"2026-07-05", "2026-07-12", "2026-07-19", "2026-07-26",
	}, days)
}

func TestExpandWithin_Deterministic(t *testing.T) {
	from := dateutil.MustParse("2026-07-01")
	to := dateutil.MustParse("2026-08-31")

	first, err := ExpandWithin("FREQ=WEEKLY;BYDAY=MO,FR", from, to)
	require.NoError(t, err)
	second, err := ExpandWithin("FREQ=WEEKLY;BYDAY=MO,FR", from, to)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestExpandWithin_EmptyRule(t *testing.T) {
	days, err := ExpandWithin("", dateutil.MustParse("2026-07-01"), dateutil.MustParse("2026-07-31"))
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestExpandWithin_InvalidRule(t *testing.T) {
	_, err := ExpandWithin("FREQ=NONSENSE", dateutil.MustParse("2026-07-01"), dateutil.MustParse("2026-07-31"))
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestExpandWithin_InvertedWindow(t *testing.T) {
	days, err := ExpandWithin("FREQ=DAILY", dateutil.MustParse("2026-07-31"), dateutil.MustParse("2026-07-01"))
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("FREQ=WEEKLY;BYDAY=SU"))
	assert.ErrorIs(t, Validate("not a rule"), ErrInvalidRule)
}
