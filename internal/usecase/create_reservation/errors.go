package create_reservation

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("create_reservation: unit not found")

	// ErrNoCalendarForDate возвращается, когда ни одна привязка календаря
	// не действует на запрошенный день заезда
	ErrNoCalendarForDate = errors.New("create_reservation: no calendar effective for requested date")

	// ErrCalendarNotFound возвращается, когда привязанный календарь не найден
	ErrCalendarNotFound = errors.New("create_reservation: calendar not found")

	// ErrOverlap возвращается, когда запрошенные даты пересекаются с
	// существующим бронированием. Это конфликт, а не отказ по правилам:
	// внутренние повторы не выполняются, решение о новых датах за клиентом.
	ErrOverlap = errors.New("create_reservation: overlapping reservation exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
