package cancel_appointment

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}
	if req.ActorID == uuid.Nil {
		return fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// validateCancellationWindow клиент может отменить запись не позднее чем за window до начала.
// Ровно window до начала - ещё можно.
func validateCancellationWindow(slotStart, now time.Time, window time.Duration) error {
	if slotStart.Sub(now) < window {
		return fmt.Errorf("%w: appointment starts at %s, cancellation closes %s before",
			ErrTooLateToCancel, slotStart.Format(time.RFC3339), window)
	}
	return nil
}
