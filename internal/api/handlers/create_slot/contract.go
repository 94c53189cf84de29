package create_slot

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	publishSlots "github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
)

type PublishSlotsUseCase interface {
	CreateSlot(ctx context.Context, req *publishSlots.CreateSlotRequest) (*domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
