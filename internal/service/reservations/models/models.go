package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// GetUnitReservationsRequest запрос на бронирования юнита
type GetUnitReservationsRequest struct {
	UnitID int64   `json:"unitId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// ReservationResponse бронирование в ответе API.
// CheckOut — включительная дата выезда; в хранилище диапазон полуоткрыт.
type ReservationResponse struct {
	ID int64 `json:"id"`

	UnitID     int64  `json:"unitId"`
	UnitName   string `json:"unitName"`
	UnitNumber string `json:"unitNumber,omitempty"`

	CalendarID      int64  `json:"calendarId"`
	CalendarName    string `json:"calendarName"`
	CalendarVersion int    `json:"calendarVersion"`

	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`

	Rate        float64 `json:"rate"`
	Currency    string  `json:"currency"`
	Total       float64 `json:"total"`
	CancelHours int     `json:"cancelHours"`
	CancelFee   float64 `json:"cancelFee"`

	Guest   *domain.GuestSnapshot   `json:"guest,omitempty"`
	Payment *domain.PaymentSnapshot `json:"payment,omitempty"`

	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	switch status {
	case domain.StatusHold, domain.StatusConfirmed, domain.StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainReservation конвертирует domain модель в ответ API
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	nights := res.Nights()

	return &ReservationResponse{
		ID:                 res.ID,
		UnitID:             res.UnitID,
		UnitName:           res.UnitName,
		UnitNumber:         res.UnitNumber,
		CalendarID:         res.CalendarID,
		CalendarName:       res.CalendarName,
		CalendarVersion:    res.CalendarVersion,
		CheckIn:            res.StartDay.String(),
		CheckOut:           res.EndDay.AddDays(-1).String(),
		Nights:             nights,
		Rate:               res.Rate,
		Currency:           res.Currency,
		Total:              res.Rate * float64(nights),
		CancelHours:        res.CancelHours,
		CancelFee:          res.CancelFee,
		Guest:              res.Guest,
		Payment:            res.Payment,
		Status:             string(res.Status),
		CancellationReason: res.CancellationReason,
		CancelledAt:        res.CancelledAt,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}
}

// FromDomainReservations конвертирует список domain моделей в ответ API
func FromDomainReservations(items []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Total: len(out)}
}
