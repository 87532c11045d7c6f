package unit

import "errors"

var (
	// ErrUnitNotFound возвращается, когда юнит не найден
	ErrUnitNotFound = errors.New("unit.repository: unit not found")

	// ErrLinkNotFound возвращается, когда привязка календаря не найдена
	ErrLinkNotFound = errors.New("unit.repository: calendar link not found")

	// ErrDuplicateUnitKey возвращается при нарушении уникальности (tenant_id, unit_key)
	ErrDuplicateUnitKey = errors.New("unit.repository: unit key already exists for tenant")

	// ErrDuplicateLink возвращается при повторной привязке календаря
	// с той же effective-датой — резолвер требует различимых дат
	ErrDuplicateLink = errors.New("unit.repository: calendar link with this effective date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("unit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("unit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("unit.repository: failed to scan row")
)
