package create_slots_bulk

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	publishSlots "github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
)

type PublishSlotsUseCase interface {
	CreateSlotsBulk(ctx context.Context, req *publishSlots.CreateSlotsBulkRequest) ([]*domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
