package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreateUnitRequest запрос на создание юнита
type CreateUnitRequest struct {
	TenantID   string  `json:"-"`
	UnitKey    string  `json:"unitKey"`
	Name       string  `json:"name"`
	UnitNumber string  `json:"unitNumber,omitempty"`
	Rate       float64 `json:"rate"`
	Currency   string  `json:"currency,omitempty"`
}

// AddLinkRequest запрос на привязку версии календаря к юниту
type AddLinkRequest struct {
	CalendarID    int64  `json:"calendarId"`
	EffectiveDate string `json:"effectiveDate"`
}

// RemoveLinkRequest запрос на снятие привязки
type RemoveLinkRequest struct {
	CalendarID    int64  `json:"calendarId"`
	EffectiveDate string `json:"effectiveDate"`
}

// Response модели

// CalendarLinkResponse привязка календаря в ответе API
type CalendarLinkResponse struct {
	CalendarID      int64  `json:"calendarId"`
	CalendarName    string `json:"calendarName"`
	CalendarVersion int    `json:"calendarVersion"`
	EffectiveDate   string `json:"effectiveDate"`
}

// UnitResponse юнит в ответе API
type UnitResponse struct {
	ID         int64   `json:"id"`
	TenantID   string  `json:"tenantId"`
	UnitKey    string  `json:"unitKey"`
	Name       string  `json:"name"`
	UnitNumber string  `json:"unitNumber,omitempty"`
	Rate       float64 `json:"rate"`
	Currency   string  `json:"currency"`

	CalendarLinks []CalendarLinkResponse `json:"calendarLinks"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnitListResponse список юнитов
type UnitListResponse struct {
	Units []*UnitResponse `json:"units"`
	Total int             `json:"total"`
}

// FromDomainUnit конвертирует domain модель в ответ API
func FromDomainUnit(unit *domain.Unit) *UnitResponse {
	links := make([]CalendarLinkResponse, 0, len(unit.CalendarLinks))
	for _, l := range unit.CalendarLinks {
		links = append(links, CalendarLinkResponse{
			CalendarID:      l.CalendarID,
			CalendarName:    l.CalendarName,
			CalendarVersion: l.CalendarVersion,
			EffectiveDate:   l.EffectiveDate.String(),
		})
	}

	return &UnitResponse{
		ID:            unit.ID,
		TenantID:      unit.TenantID,
		UnitKey:       unit.UnitKey,
		Name:          unit.Name,
		UnitNumber:    unit.UnitNumber,
		Rate:          unit.Rate,
		Currency:      unit.Currency,
		CalendarLinks: links,
		Active:        unit.Active,
		CreatedAt:     unit.CreatedAt,
		UpdatedAt:     unit.UpdatedAt,
	}
}

// FromDomainUnits конвертирует список domain моделей в ответ API
func FromDomainUnits(units []*domain.Unit) *UnitListResponse {
	out := make([]*UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, FromDomainUnit(u))
	}
	return &UnitListResponse{Units: out, Total: len(out)}
}
