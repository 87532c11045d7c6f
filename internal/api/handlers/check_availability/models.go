package check_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	UnitKey  string `json:"unitKey"`
	CheckIn  string `json:"checkIn"`            // "2026-07-01"
	CheckOut string `json:"checkOut,omitempty"` // включительно
	Mode     string `json:"mode,omitempty"`     // reservations | appointments
}

// ConflictResponse пересекающееся бронирование
type ConflictResponse struct {
	ReservationID int64  `json:"reservationId"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"` // включительно
	Status        string `json:"status"`
}

// CalendarSummaryResponse применённый календарь
type CalendarSummaryResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Version       int     `json:"version"`
	EffectiveDate string  `json:"effectiveDate"`
	CancelHours   int     `json:"cancelHours"`
	CancelFee     float64 `json:"cancelFee"`
}

// UnitSummaryResponse запрошенный юнит
type UnitSummaryResponse struct {
	ID         int64   `json:"id"`
	UnitKey    string  `json:"unitKey"`
	Name       string  `json:"name"`
	UnitNumber string  `json:"unitNumber,omitempty"`
	Rate       float64 `json:"rate"`
	Currency   string  `json:"currency"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	OK          bool     `json:"ok"`
	ReasonCodes []string `json:"reasonCodes"`

	Unit     *UnitSummaryResponse     `json:"unit,omitempty"`
	Calendar *CalendarSummaryResponse `json:"calendar,omitempty"`

	Conflicts []ConflictResponse `json:"conflicts,omitempty"`

	NextEffectiveFrom *string `json:"nextEffectiveFrom,omitempty"`

	Nights int `json:"nights,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(tenantID string) (*checkAvailability.Request, error) {
	checkIn, err := dateutil.Parse(r.CheckIn)
	if err != nil {
		return nil, err
	}

	var checkOut dateutil.Day
	if r.CheckOut != "" {
		checkOut, err = dateutil.Parse(r.CheckOut)
		if err != nil {
			return nil, err
		}
	}

	return &checkAvailability.Request{
		TenantID: tenantID,
		UnitKey:  r.UnitKey,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Mode:     domain.CalendarCategory(r.Mode),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		OK:          res.OK,
		ReasonCodes: make([]string, 0, len(res.ReasonCodes)),
		Nights:      res.Nights,
	}

	for _, code := range res.ReasonCodes {
		out.ReasonCodes = append(out.ReasonCodes, string(code))
	}

	if res.Unit != nil {
		out.Unit = &UnitSummaryResponse{
			ID:         res.Unit.ID,
			UnitKey:    res.Unit.UnitKey,
			Name:       res.Unit.Name,
			UnitNumber: res.Unit.UnitNumber,
			Rate:       res.Unit.Rate,
			Currency:   res.Unit.Currency,
		}
	}

	if res.Calendar != nil {
		out.Calendar = &CalendarSummaryResponse{
			ID:            res.Calendar.ID,
			Name:          res.Calendar.Name,
			Version:       res.Calendar.Version,
			EffectiveDate: res.Calendar.EffectiveDate.String(),
			CancelHours:   res.Calendar.CancelHours,
			CancelFee:     res.Calendar.CancelFee,
		}
	}

	for _, c := range res.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			ReservationID: c.ReservationID,
			CheckIn:       c.StartDay.String(),
			CheckOut:      c.EndDay.AddDays(-1).String(),
			Status:        c.Status,
		})
	}

	if res.NextEffectiveFrom != nil {
		s := res.NextEffectiveFrom.String()
		out.NextEffectiveFrom = &s
	}

	return out
}
