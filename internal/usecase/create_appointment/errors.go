package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrCustomerNotEligible возвращается, когда клиент удалён, заблокирован, неактивен или приостановлен
	ErrCustomerNotEligible = fmt.Errorf("%w: create_appointment: customer is not allowed to book", domain.ErrForbidden)

	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = fmt.Errorf("%w: create_appointment: stylist not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_appointment: service not found", domain.ErrNotFound)

	// ErrServiceNotOffered возвращается, когда услуга принадлежит другому стилисту
	ErrServiceNotOffered = fmt.Errorf("%w: create_appointment: this service is not offered by the selected stylist", domain.ErrConflict)

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: create_appointment: time slot not found", domain.ErrNotFound)

	// ErrSlotOwnershipMismatch возвращается, когда слот принадлежит другому стилисту
	ErrSlotOwnershipMismatch = fmt.Errorf("%w: create_appointment: this time slot does not belong to the selected stylist", domain.ErrConflict)

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят (в том числе при проигрыше гонки)
	ErrSlotAlreadyBooked = fmt.Errorf("%w: create_appointment: the selected time slot is already booked", domain.ErrAlreadyBooked)

	// ErrSelfConflict возвращается, когда у клиента уже есть запись на то же время
	ErrSelfConflict = fmt.Errorf("%w: create_appointment: you already have an appointment at this time", domain.ErrSelfConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_appointment: internal error", domain.ErrInternal)
)
