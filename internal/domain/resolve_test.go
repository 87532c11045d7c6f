package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

func TestResolveCalendarLink_LatestEffectiveWins(t *testing.T) {
	links := []CalendarLink{
		{CalendarID: 1, CalendarName: "base", CalendarVersion: 1, EffectiveDate: "2026-01-01"},
		{CalendarID: 2, CalendarName: "summer", CalendarVersion: 1, EffectiveDate: "2026-06-01"},
		{CalendarID: 3, CalendarName: "winter", CalendarVersion: 2, EffectiveDate: "2026-12-01"},
	}

	// Nothing applies before the first effective date
	assert.Nil(t, ResolveCalendarLink(links, dateutil.MustParse("2025-12-31")))

	// A link applies on its effective date
	got := ResolveCalendarLink(links, dateutil.MustParse("2026-01-01"))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.CalendarID)

	// Between dates the latest effective link wins
	got = ResolveCalendarLink(links, dateutil.MustParse("2026-07-15"))
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.CalendarID)

	// A future link never applies early
	got = ResolveCalendarLink(links, dateutil.MustParse("2026-11-30"))
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.CalendarID)

	got = ResolveCalendarLink(links, dateutil.MustParse("2026-12-01"))
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.CalendarID)
}

func TestResolveCalendarLink_TieBreaksOnCalendarID(t *testing.T) {
	links := []CalendarLink{
		{CalendarID: 10, EffectiveDate: "2026-06-01"},
		{CalendarID: 20, EffectiveDate: "2026-06-01"},
	}

	got := ResolveCalendarLink(links, dateutil.MustParse("2026-06-15"))
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.CalendarID)
}

func TestResolveCalendarLink_NoLinks(t *testing.T) {
	assert.Nil(t, ResolveCalendarLink(nil, dateutil.MustParse("2026-06-15")))
}

func TestNextEffectiveDate(t *testing.T) {
	links := []CalendarLink{
		{CalendarID: 1, EffectiveDate: "2026-09-01"},
		{CalendarID: 2, EffectiveDate: "2026-08-01"},
	}

	next, ok := NextEffectiveDate(links, dateutil.MustParse("2026-07-15"))
	require.True(t, ok)
	assert.Equal(t, dateutil.Day("2026-08-01"), next)

	// All links already in the past
	_, ok = NextEffectiveDate(links, dateutil.MustParse("2026-10-01"))
	assert.False(t, ok)
}
