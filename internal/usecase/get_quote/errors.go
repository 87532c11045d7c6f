package get_quote

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("get_quote: unit not found")

	// ErrNoCalendarForDate возвращается, когда ни одна привязка календаря
	// не действует на запрошенный день заезда
	ErrNoCalendarForDate = errors.New("get_quote: no calendar effective for requested date")

	// ErrCalendarNotFound возвращается, когда привязанный календарь не найден
	ErrCalendarNotFound = errors.New("get_quote: calendar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
