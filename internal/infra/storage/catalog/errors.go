package catalog

import "errors"

var (
	// ErrStylistNotFound возвращается, когда стилист не найден или удалён
	ErrStylistNotFound = errors.New("catalog.repository: stylist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или удалена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
