package get_slots

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
)

type SlotService interface {
	GetSlots(ctx context.Context, req *models.GetSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
