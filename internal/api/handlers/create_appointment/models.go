package create_appointment

import (
	"fmt"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StylistID  string `json:"stylistId"`
	ServiceID  string `json:"serviceId"`
	TimeSlotID string `json:"timeSlotId"`
	Notes      string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID uuid.UUID) (*createAppointment.Request, error) {
	stylistID, err := uuid.Parse(r.StylistID)
	if err != nil {
		return nil, fmt.Errorf("stylistId: %w", err)
	}
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("serviceId: %w", err)
	}
	slotID, err := uuid.Parse(r.TimeSlotID)
	if err != nil {
		return nil, fmt.Errorf("timeSlotId: %w", err)
	}

	return &createAppointment.Request{
		CustomerID: customerID,
		StylistID:  stylistID,
		ServiceID:  serviceID,
		TimeSlotID: slotID,
		Notes:      r.Notes,
	}, nil
}
