package dateutil

import (
	"fmt"
	"time"
)

// Layout is the wire and storage format for calendar days.
const Layout = "2006-01-02"

// Day is a timezone-less calendar day, anchored at UTC midnight and
// exchanged as a YYYY-MM-DD string. The zero value is the empty string.
type Day string

// Parse validates and normalizes a YYYY-MM-DD string into a Day.
func Parse(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals in tests and fixtures. Panics on bad input.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime truncates a time to its UTC calendar day.
func FromTime(t time.Time) Day {
	return Day(t.UTC().Format(Layout))
}

// Today returns the calendar day of the given instant, truncated in UTC.
func Today(now time.Time) Day {
	return FromTime(now)
}

// Time returns the UTC-midnight instant of the day.
func (d Day) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// String implements fmt.Stringer.
func (d Day) String() string { return string(d) }

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool { return d == "" }

// Validate checks that the day is a well-formed YYYY-MM-DD date.
func (d Day) Validate() error {
	_, err := Parse(string(d))
	return err
}

// AddDays returns the day shifted by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
// YYYY-MM-DD strings order lexicographically, so plain comparison is exact.
func (d Day) Before(other Day) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool { return d > other }

// Weekday returns the stable, locale-independent weekday key
// ("Sun".."Sat") of the day.
func (d Day) Weekday() string {
	return weekdayKeys[d.Time().Weekday()]
}

var weekdayKeys = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayKeys lists the valid weekday keys in Go's time.Weekday order.
func WeekdayKeys() []string {
	keys := make([]string, len(weekdayKeys))
	copy(keys, weekdayKeys[:])
	return keys
}

// DaysBetween returns the whole-day difference to - from.
// Negative when to is earlier than from.
func DaysBetween(from, to Day) int {
	return int(to.Time().Sub(from.Time()) / (24 * time.Hour))
}

// Nights returns the number of nights between a start day and an
// inclusive end day. A same-day or single-day request counts as one night.
func Nights(start, endInclusive Day) int {
	n := DaysBetween(start, endInclusive)
	if n < 1 {
		return 1
	}
	return n
}

// ExpandInclusive lists every day from start through endInclusive.
// Returns an empty slice when endInclusive is before start.
func ExpandInclusive(start, endInclusive Day) []Day {
	if endInclusive.Before(start) {
		return []Day{}
	}
	days := make([]Day, 0, DaysBetween(start, endInclusive)+1)
	for d := start; !d.After(endInclusive); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
