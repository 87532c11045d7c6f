package recurrence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// ErrInvalidRule возвращается, когда RRULE-строка не может быть разобрана
var ErrInvalidRule = errors.New("recurrence: invalid recurrence rule")

// Validate проверяет, что RRULE-строка разбирается. Пустая строка валидна.
func Validate(rule string) error {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return nil
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return nil
}

// ExpandWithin разворачивает RRULE-правило (например, "FREQ=WEEKLY;BYDAY=SU")
// в конкретные календарные дни внутри окна [from, to] включительно.
//
// Если правило не содержит DTSTART, якорем становится начало окна — так
// результат детерминирован (одинаковые входы дают одинаковый выход) и
// ограничен окном запроса даже для бесконечных правил.
func ExpandWithin(rule string, from, to dateutil.Day) ([]dateutil.Day, error) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return []dateutil.Day{}, nil
	}
	if to.Before(from) {
		return []dateutil.Day{}, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	if !strings.Contains(strings.ToUpper(rule), "DTSTART") {
		r.DTStart(from.Time())
	}

	occurrences := r.Between(from.Time(), to.Time(), true)

	days := make([]dateutil.Day, 0, len(occurrences))
	for _, occ := range occurrences {
		days = append(days, dateutil.FromTime(occ))
	}
	return days, nil
}
