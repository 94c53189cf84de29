package cancel_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: cancel_appointment: appointment not found", domain.ErrNotFound)

	// ErrNotOwner возвращается, когда клиент отменяет чужую запись
	ErrNotOwner = fmt.Errorf("%w: cancel_appointment: you can only cancel your own appointments", domain.ErrForbidden)

	// ErrAlreadyCancelled возвращается, когда запись уже отменена
	ErrAlreadyCancelled = fmt.Errorf("%w: cancel_appointment: appointment is already cancelled", domain.ErrInvalidState)

	// ErrAlreadyCompleted возвращается, когда запись уже завершена
	ErrAlreadyCompleted = fmt.Errorf("%w: cancel_appointment: completed appointment cannot be cancelled", domain.ErrInvalidState)

	// ErrTooLateToCancel возвращается, когда до начала записи осталось меньше окна отмены
	ErrTooLateToCancel = fmt.Errorf("%w: cancel_appointment: too late to cancel", domain.ErrPolicyViolation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_appointment: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: cancel_appointment: internal error", domain.ErrInternal)
)
