package units

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("unit not found")

	// ErrCalendarNotFound возвращается, когда привязываемый календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrLinkNotFound возвращается, когда привязка календаря не найдена
	ErrLinkNotFound = errors.New("calendar link not found")

	// ErrDuplicateUnitKey возвращается, когда ключ юнита уже занят в тенанте
	ErrDuplicateUnitKey = errors.New("unit key already exists for tenant")

	// ErrDuplicateLink возвращается при привязке с уже занятой effective-датой
	ErrDuplicateLink = errors.New("calendar link with this effective date already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
