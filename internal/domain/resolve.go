package domain

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// ResolveCalendarLink selects the single calendar link applicable to a unit
// on targetDay: among links with EffectiveDate <= targetDay, the one with
// the latest effective date wins. Equal effective dates (not expected, the
// unit invariant keeps them distinct) tie-break on the larger calendar ID so
// the choice stays deterministic. Returns nil when no link is effective yet.
func ResolveCalendarLink(links []CalendarLink, targetDay dateutil.Day) *CalendarLink {
	var chosen *CalendarLink

	for i := range links {
		link := &links[i]
		if link.EffectiveDate.After(targetDay) {
			continue
		}
		if chosen == nil ||
			link.EffectiveDate.After(chosen.EffectiveDate) ||
			(link.EffectiveDate == chosen.EffectiveDate && link.CalendarID > chosen.CalendarID) {
			chosen = link
		}
	}

	return chosen
}

// NextEffectiveDate returns the earliest future effective date among the
// links, as guidance when nothing resolves for the requested day. The second
// return is false when no link lies in the future either.
func NextEffectiveDate(links []CalendarLink, targetDay dateutil.Day) (dateutil.Day, bool) {
	var earliest dateutil.Day
	found := false

	for _, link := range links {
		if !link.EffectiveDate.After(targetDay) {
			continue
		}
		if !found || link.EffectiveDate.Before(earliest) {
			earliest = link.EffectiveDate
			found = true
		}
	}

	return earliest, found
}
