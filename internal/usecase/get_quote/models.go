package get_quote

import (
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// Request модель запроса расчёта стоимости
type Request struct {
	TenantID string
	UnitKey  string
	CheckIn  dateutil.Day // День заезда
	CheckOut dateutil.Day // День выезда (включительно)
}

// Response модель ответа с расчётом стоимости.
// Цена — плоская ночная ставка юнита, умноженная на количество ночей.
type Response struct {
	UnitID   int64
	UnitKey  string
	UnitName string

	CalendarID      int64
	CalendarName    string
	CalendarVersion int

	Currency string
	Nightly  float64
	Nights   int
	Total    float64

	CheckIn  dateutil.Day
	CheckOut dateutil.Day

	CancelHours int
	CancelFee   float64
}
