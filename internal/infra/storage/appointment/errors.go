package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда на слот уже есть неотменённая запись (частичный уникальный индекс)
	ErrSlotTaken = errors.New("appointment.repository: slot already has an active appointment")

	// ErrCannotCancel возвращается, когда запись уже в терминальном статусе
	ErrCannotCancel = errors.New("appointment.repository: appointment cannot be cancelled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
