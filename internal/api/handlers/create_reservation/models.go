package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// CreateReservationRequest HTTP request model.
// Guest и Payment — непрозрачные снапшоты; платёжные поля содержат только
// токены провайдера и несекретные метаданные карты.
type CreateReservationRequest struct {
	UnitKey  string `json:"unitKey"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`       // включительно
	Mode     string `json:"mode,omitempty"` // reservations | appointments

	Guest   *domain.GuestSnapshot   `json:"guest,omitempty"`
	Payment *domain.PaymentSnapshot `json:"payment,omitempty"`
}

// CreateReservationResponse HTTP response model.
// Либо создано бронирование (ok=true), либо отказ по правилам
// (ok=false и список reason-кодов) — оба варианта со статусом 200/201.
type CreateReservationResponse struct {
	OK          bool     `json:"ok"`
	ReasonCodes []string `json:"reasonCodes"`

	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

// ReservationResponse созданное бронирование
type ReservationResponse struct {
	ID int64 `json:"id"`

	UnitID     int64  `json:"unitId"`
	UnitKey    string `json:"unitKey"`
	UnitName   string `json:"unitName"`
	UnitNumber string `json:"unitNumber,omitempty"`

	CalendarID      int64  `json:"calendarId"`
	CalendarName    string `json:"calendarName"`
	CalendarVersion int    `json:"calendarVersion"`

	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"` // включительно
	Nights   int    `json:"nights"`

	Rate        float64 `json:"rate"`
	Currency    string  `json:"currency"`
	Total       float64 `json:"total"`
	CancelHours int     `json:"cancelHours"`
	CancelFee   float64 `json:"cancelFee"`

	Status string `json:"status"`

	Guest   *domain.GuestSnapshot   `json:"guest,omitempty"`
	Payment *domain.PaymentSnapshot `json:"payment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID string) (*createReservation.Request, error) {
	checkIn, err := dateutil.Parse(r.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := dateutil.Parse(r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		TenantID: tenantID,
		UnitKey:  r.UnitKey,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Mode:     domain.CalendarCategory(r.Mode),
		Guest:    r.Guest,
		Payment:  r.Payment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *createReservation.Response) *CreateReservationResponse {
	out := &CreateReservationResponse{
		OK:          res.OK,
		ReasonCodes: make([]string, 0, len(res.ReasonCodes)),
	}
	for _, code := range res.ReasonCodes {
		out.ReasonCodes = append(out.ReasonCodes, string(code))
	}

	if res.Reservation != nil {
		cr := res.Reservation
		out.Reservation = &ReservationResponse{
			ID:              cr.ID,
			UnitID:          cr.UnitID,
			UnitKey:         cr.UnitKey,
			UnitName:        cr.UnitName,
			UnitNumber:      cr.UnitNumber,
			CalendarID:      cr.CalendarID,
			CalendarName:    cr.CalendarName,
			CalendarVersion: cr.CalendarVersion,
			CheckIn:         cr.CheckIn.String(),
			CheckOut:        cr.CheckOut.String(),
			Nights:          cr.Nights,
			Rate:            cr.Rate,
			Currency:        cr.Currency,
			Total:           cr.Total,
			CancelHours:     cr.CancelHours,
			CancelFee:       cr.CancelFee,
			Status:          cr.Status,
			Guest:           cr.Guest,
			Payment:         cr.Payment,
			CreatedAt:       cr.CreatedAt,
		}
	}

	return out
}
