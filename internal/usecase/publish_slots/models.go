package publish_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CreateSlotRequest запрос на создание одного слота
type CreateSlotRequest struct {
	StylistID uuid.UUID
	Date      time.Time // Календарная дата (время суток игнорируется)
	StartTime types.TimeString
	EndTime   types.TimeString
}

// CreateSlotsBulkRequest запрос на пакетное создание слотов на один день
type CreateSlotsBulkRequest struct {
	StylistID uuid.UUID
	Date      time.Time
	Slots     []domain.SlotTime
}
