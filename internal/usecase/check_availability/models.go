package check_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// Request модель запроса проверки доступности
type Request struct {
	TenantID string                  // Арендатор
	UnitKey  string                  // Ключ юнита внутри арендатора
	CheckIn  dateutil.Day            // День заезда
	CheckOut dateutil.Day            // День выезда (включительно, опционально)
	Mode     domain.CalendarCategory // reservations | appointments
}

// ConflictInfo существующее бронирование, пересекающее запрошенные даты
type ConflictInfo struct {
	ReservationID int64
	StartDay      dateutil.Day
	EndDay        dateutil.Day // exclusive
	Status        string
}

// CalendarSummary краткие сведения о применённом календаре
type CalendarSummary struct {
	ID            int64
	Name          string
	Version       int
	EffectiveDate dateutil.Day
	CancelHours   int
	CancelFee     float64
}

// Response модель ответа проверки доступности.
// Отказ по правилам или пересечению — не ошибка: OK=false и полный
// список reason-кодов, чтобы вызывающая сторона могла показать все причины.
type Response struct {
	OK          bool
	ReasonCodes []domain.ReasonCode

	Unit     *UnitSummary
	Calendar *CalendarSummary

	// Conflicts заполняется при OVERLAP
	Conflicts []ConflictInfo

	// NextEffectiveFrom подсказка при NO_CALENDAR_FOR_DATE: самая ранняя
	// будущая effective-дата среди привязок юнита
	NextEffectiveFrom *dateutil.Day

	Nights int
}

// UnitSummary краткие сведения о юните
type UnitSummary struct {
	ID         int64
	UnitKey    string
	Name       string
	UnitNumber string
	Rate       float64
	Currency   string
}
