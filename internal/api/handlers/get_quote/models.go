package get_quote

import (
	getQuote "github.com/m04kA/SMC-ReservationService/internal/usecase/get_quote"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// GetQuoteRequest HTTP request model
type GetQuoteRequest struct {
	UnitKey  string `json:"unitKey"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"` // включительно
}

// GetQuoteResponse HTTP response model
type GetQuoteResponse struct {
	UnitID   int64  `json:"unitId"`
	UnitKey  string `json:"unitKey"`
	UnitName string `json:"unitName"`

	CalendarID      int64  `json:"calendarId"`
	CalendarName    string `json:"calendarName"`
	CalendarVersion int    `json:"calendarVersion"`

	Currency string  `json:"currency"`
	Nightly  float64 `json:"nightly"`
	Nights   int     `json:"nights"`
	Total    float64 `json:"total"`

	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`

	CancelHours int     `json:"cancelHours"`
	CancelFee   float64 `json:"cancelFee"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GetQuoteRequest) ToUseCaseRequest(tenantID string) (*getQuote.Request, error) {
	checkIn, err := dateutil.Parse(r.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := dateutil.Parse(r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &getQuote.Request{
		TenantID: tenantID,
		UnitKey:  r.UnitKey,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *getQuote.Response) *GetQuoteResponse {
	return &GetQuoteResponse{
		UnitID:          res.UnitID,
		UnitKey:         res.UnitKey,
		UnitName:        res.UnitName,
		CalendarID:      res.CalendarID,
		CalendarName:    res.CalendarName,
		CalendarVersion: res.CalendarVersion,
		Currency:        res.Currency,
		Nightly:         res.Nightly,
		Nights:          res.Nights,
		Total:           res.Total,
		CheckIn:         res.CheckIn.String(),
		CheckOut:        res.CheckOut.String(),
		CancelHours:     res.CancelHours,
		CancelFee:       res.CancelFee,
	}
}
