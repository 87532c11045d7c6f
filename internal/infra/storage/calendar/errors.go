package calendar

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar.repository: calendar not found")

	// ErrVersionConflict возвращается при нарушении уникальности (name, version) —
	// конкурирующее создание версии выиграло гонку
	ErrVersionConflict = errors.New("calendar.repository: calendar version already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")

	// ErrMarshalRules возвращается при ошибке сериализации правил календаря
	ErrMarshalRules = errors.New("calendar.repository: failed to marshal calendar rules")
)
