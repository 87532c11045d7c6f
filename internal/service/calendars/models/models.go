package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// Request модели

// HolidayInput праздничная дата с повышенным минимумом ночей
type HolidayInput struct {
	Date      string `json:"date"`
	MinNights int    `json:"minNights"`
}

// CancellationInput политика отмены
type CancellationInput struct {
	NoticeHours *int     `json:"noticeHours,omitempty"`
	Fee         *float64 `json:"fee,omitempty"`
}

// LeadTimeInput границы горизонта бронирования в днях
type LeadTimeInput struct {
	MinDays *int `json:"minDays,omitempty"`
	MaxDays *int `json:"maxDays,omitempty"`
}

// SaveCalendarRequest запрос на сохранение календаря.
// Имя идентифицирует линейку версий: первая запись создаёт версию 1,
// последующие — либо новую версию, либо перезапись последней.
type SaveCalendarRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Currency string `json:"currency,omitempty"`

	Cancellation *CancellationInput `json:"cancellation,omitempty"`
	LeadTime     *LeadTimeInput     `json:"leadTime,omitempty"`

	Blackouts          []string       `json:"blackouts,omitempty"`
	RecurringBlackouts string         `json:"recurringBlackouts,omitempty"`
	Holidays           []HolidayInput `json:"holidays,omitempty"`
	MinStayByWeekday   map[string]int `json:"minStayByWeekday,omitempty"`
}

// ListCalendarsRequest запрос на список календарей с фильтрами
type ListCalendarsRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Response модели

// HolidayResponse праздничное правило в ответе
type HolidayResponse struct {
	Date      string `json:"date"`
	MinNights int    `json:"minNights"`
}

// CalendarResponse календарь в ответе API
type CalendarResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
	Category string `json:"category"`
	Currency string `json:"currency"`

	CancelNoticeHours int     `json:"cancelNoticeHours"`
	CancelFee         float64 `json:"cancelFee"`
	LeadMinDays       int     `json:"leadMinDays"`
	LeadMaxDays       int     `json:"leadMaxDays"`

	Blackouts          []string          `json:"blackouts"`
	RecurringBlackouts string            `json:"recurringBlackouts,omitempty"`
	Holidays           []HolidayResponse `json:"holidays"`
	MinStayByWeekday   map[string]int    `json:"minStayByWeekday"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CalendarListResponse список календарей
type CalendarListResponse struct {
	Calendars []*CalendarResponse `json:"calendars"`
	Total     int                 `json:"total"`
}

// ToDomainCalendar конвертирует запрос в domain модель.
// Отсутствующие поля политики получают значения по умолчанию.
func (r *SaveCalendarRequest) ToDomainCalendar() (*domain.Calendar, error) {
	cal := &domain.Calendar{
		Name:     r.Name,
		Category: domain.CategoryReservations,
		Currency: domain.DefaultCurrency,
		Cancellation: domain.CancellationPolicy{
			NoticeHours: domain.DefaultCancelHours,
			Fee:         domain.DefaultCancelFee,
		},
		LeadTime: domain.LeadTimeRule{
			MinDays: domain.DefaultLeadMinDays,
			MaxDays: domain.DefaultLeadMaxDays,
		},
		RecurringBlackouts: r.RecurringBlackouts,
		Active:             true,
	}

	if r.Category != "" {
		cal.Category = domain.CalendarCategory(r.Category)
	}
	if r.Currency != "" {
		cal.Currency = r.Currency
	}

	if r.Cancellation != nil {
		if r.Cancellation.NoticeHours != nil {
			cal.Cancellation.NoticeHours = *r.Cancellation.NoticeHours
		}
		if r.Cancellation.Fee != nil {
			cal.Cancellation.Fee = *r.Cancellation.Fee
		}
	}

	if r.LeadTime != nil {
		if r.LeadTime.MinDays != nil {
			cal.LeadTime.MinDays = *r.LeadTime.MinDays
		}
		if r.LeadTime.MaxDays != nil {
			cal.LeadTime.MaxDays = *r.LeadTime.MaxDays
		}
	}

	cal.Blackouts = make([]dateutil.Day, 0, len(r.Blackouts))
	for _, s := range r.Blackouts {
		d, err := dateutil.Parse(s)
		if err != nil {
			return nil, err
		}
		cal.Blackouts = append(cal.Blackouts, d)
	}

	cal.Holidays = make([]domain.HolidayRule, 0, len(r.Holidays))
	for _, h := range r.Holidays {
		d, err := dateutil.Parse(h.Date)
		if err != nil {
			return nil, err
		}
		cal.Holidays = append(cal.Holidays, domain.HolidayRule{Date: d, MinNights: h.MinNights})
	}

	if len(r.MinStayByWeekday) > 0 {
		cal.MinStayByWeekday = make(map[string]int, len(r.MinStayByWeekday))
		for k, v := range r.MinStayByWeekday {
			cal.MinStayByWeekday[k] = v
		}
	}

	return cal, nil
}

// FromDomainCalendar конвертирует domain модель в ответ API
func FromDomainCalendar(cal *domain.Calendar) *CalendarResponse {
	blackouts := make([]string, 0, len(cal.Blackouts))
	for _, d := range cal.Blackouts {
		blackouts = append(blackouts, d.String())
	}

	holidays := make([]HolidayResponse, 0, len(cal.Holidays))
	for _, h := range cal.Holidays {
		holidays = append(holidays, HolidayResponse{Date: h.Date.String(), MinNights: h.MinNights})
	}

	minStay := make(map[string]int, len(cal.MinStayByWeekday))
	for k, v := range cal.MinStayByWeekday {
		minStay[k] = v
	}

	return &CalendarResponse{
		ID:                 cal.ID,
		Name:               cal.Name,
		Version:            cal.Version,
		Category:           string(cal.Category),
		Currency:           cal.Currency,
		CancelNoticeHours:  cal.Cancellation.NoticeHours,
		CancelFee:          cal.Cancellation.Fee,
		LeadMinDays:        cal.LeadTime.MinDays,
		LeadMaxDays:        cal.LeadTime.MaxDays,
		Blackouts:          blackouts,
		RecurringBlackouts: cal.RecurringBlackouts,
		Holidays:           holidays,
		MinStayByWeekday:   minStay,
		Active:             cal.Active,
		CreatedAt:          cal.CreatedAt,
		UpdatedAt:          cal.UpdatedAt,
	}
}

// FromDomainCalendars конвертирует список domain моделей в ответ API
func FromDomainCalendars(cals []*domain.Calendar) *CalendarListResponse {
	out := make([]*CalendarResponse, 0, len(cals))
	for _, cal := range cals {
		out = append(out, FromDomainCalendar(cal))
	}
	return &CalendarListResponse{Calendars: out, Total: len(out)}
}
