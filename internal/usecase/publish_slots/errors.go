package publish_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = fmt.Errorf("%w: publish_slots: stylist not found", domain.ErrNotFound)

	// ErrPastDate возвращается для дат раньше сегодняшней
	ErrPastDate = fmt.Errorf("%w: publish_slots: cannot create slots for past dates", domain.ErrPastDate)

	// ErrDuplicateSlot возвращается, когда слот с таким временем начала уже есть
	ErrDuplicateSlot = fmt.Errorf("%w: publish_slots: time slot already exists for this stylist at this time", domain.ErrConflict)

	// ErrCapacityExceeded возвращается при превышении дневного лимита слотов (см. CapacityError)
	ErrCapacityExceeded = fmt.Errorf("%w: publish_slots: daily slot limit reached", domain.ErrCapacityExceeded)

	// ErrInvalidTimeRange возвращается, когда начало слота не раньше конца
	ErrInvalidTimeRange = fmt.Errorf("%w: publish_slots: start time must be before end time", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: publish_slots: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: publish_slots: internal error", domain.ErrInternal)
)

// CapacityError сообщает, сколько слотов ещё можно добавить на день
type CapacityError struct {
	Capacity  int
	Existing  int
	Requested int
}

// Remaining сколько слотов ещё помещается в дневной лимит
func (e *CapacityError) Remaining() int {
	if e.Existing >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Existing
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("daily limit exceeded: can only add %d more slot(s) for this day (limit %d, existing %d, requested %d)",
		e.Remaining(), e.Capacity, e.Existing, e.Requested)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
