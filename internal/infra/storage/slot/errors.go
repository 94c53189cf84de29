package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyReserved возвращается, когда условное резервирование не сработало (слот уже занят)
	ErrSlotAlreadyReserved = errors.New("slot.repository: slot already reserved")

	// ErrDuplicateSlot возвращается при нарушении уникальности (stylist, date, start_time)
	ErrDuplicateSlot = errors.New("slot.repository: duplicate slot for stylist, date and start time")

	// ErrSlotInUse возвращается при попытке удалить занятый слот или слот, на который ссылаются записи
	ErrSlotInUse = errors.New("slot.repository: slot is booked or referenced by an appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
