package slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: time slot not found", domain.ErrNotFound)

	// ErrSlotInUse возвращается при удалении занятого слота или слота с записями
	ErrSlotInUse = fmt.Errorf("%w: cannot delete a booked time slot, cancel the appointment first", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: service: internal error", domain.ErrInternal)
)
