package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}
	if req.StylistID == uuid.Nil {
		return fmt.Errorf("%w: stylistId is required", ErrInvalidInput)
	}
	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if req.TimeSlotID == uuid.Nil {
		return fmt.Errorf("%w: timeSlotId is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
