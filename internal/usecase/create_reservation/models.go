package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dateutil"
)

// Request модель запроса на создание бронирования.
// CheckOut — включительная дата выезда, как её понимает гость;
// в хранилище конвертируется в эксклюзивную (+1 день).
// Guest и Payment — непрозрачные снапшоты: ядро их не инспектирует.
type Request struct {
	TenantID string
	UnitKey  string
	CheckIn  dateutil.Day
	CheckOut dateutil.Day
	Mode     domain.CalendarCategory

	Guest   *domain.GuestSnapshot
	Payment *domain.PaymentSnapshot
}

// Response модель ответа. Либо создано бронирование (OK=true, Reservation),
// либо отказ по правилам (OK=false, ReasonCodes) — второе не ошибка.
type Response struct {
	OK          bool
	ReasonCodes []domain.ReasonCode

	Reservation *CreatedReservation
}

// CreatedReservation созданное бронирование со снапшотом условий
type CreatedReservation struct {
	ID int64

	UnitID     int64
	UnitKey    string
	UnitName   string
	UnitNumber string

	CalendarID      int64
	CalendarName    string
	CalendarVersion int

	CheckIn  dateutil.Day
	CheckOut dateutil.Day // включительно, как в запросе
	Nights   int

	Rate        float64
	Currency    string
	Total       float64
	CancelHours int
	CancelFee   float64

	Status string

	Guest   *domain.GuestSnapshot
	Payment *domain.PaymentSnapshot

	CreatedAt time.Time
}
