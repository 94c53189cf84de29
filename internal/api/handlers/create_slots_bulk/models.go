package create_slots_bulk

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	publishSlots "github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SlotTimeRequest интервал слота
type SlotTimeRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateSlotsBulkRequest HTTP request model
type CreateSlotsBulkRequest struct {
	StylistID string            `json:"stylistId"`
	Date      string            `json:"date"`
	Slots     []SlotTimeRequest `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotsBulkRequest) ToUseCaseRequest() (*publishSlots.CreateSlotsBulkRequest, error) {
	stylistID, err := uuid.Parse(r.StylistID)
	if err != nil {
		return nil, fmt.Errorf("stylistId: %w", err)
	}
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	slotTimes := make([]domain.SlotTime, 0, len(r.Slots))
	for i, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("slots[%d].startTime: %w", i, err)
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slots[%d].endTime: %w", i, err)
		}
		slotTimes = append(slotTimes, domain.SlotTime{StartTime: start, EndTime: end})
	}

	return &publishSlots.CreateSlotsBulkRequest{
		StylistID: stylistID,
		Date:      date,
		Slots:     slotTimes,
	}, nil
}
