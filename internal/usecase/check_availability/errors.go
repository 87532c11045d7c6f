package check_availability

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("check_availability: unit not found")

	// ErrCalendarNotFound возвращается, когда привязанный календарь не найден
	ErrCalendarNotFound = errors.New("check_availability: calendar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
