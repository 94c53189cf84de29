package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", domain.ErrNotFound)

	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = fmt.Errorf("%w: stylist not found", domain.ErrNotFound)

	// ErrInvalidStatus возвращается при статусе вне домена
	ErrInvalidStatus = fmt.Errorf("%w: invalid appointment status", domain.ErrInvalidInput)

	// ErrSlotTaken возвращается, когда восстановление записи конфликтует с другой активной записью на слот
	ErrSlotTaken = fmt.Errorf("%w: time slot already has another active appointment", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: service: internal error", domain.ErrInternal)
)
