package create_slot

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	publishSlots "github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	StylistID string `json:"stylistId"`
	Date      string `json:"date"`      // "2026-10-20"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotRequest) ToUseCaseRequest() (*publishSlots.CreateSlotRequest, error) {
	stylistID, err := uuid.Parse(r.StylistID)
	if err != nil {
		return nil, fmt.Errorf("stylistId: %w", err)
	}
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &publishSlots.CreateSlotRequest{
		StylistID: stylistID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}
