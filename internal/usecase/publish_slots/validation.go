package publish_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func validateStylistAndDate(stylistID uuid.UUID, date time.Time) error {
	if stylistID == uuid.Nil {
		return fmt.Errorf("%w: stylistId is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// normalizeSlotTime проверяет формат и порядок времени и приводит его к "HH:MM"
func normalizeSlotTime(st domain.SlotTime) (domain.SlotTime, error) {
	start, err := types.NewTimeStringFromString(st.StartTime.String())
	if err != nil {
		return domain.SlotTime{}, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(st.EndTime.String())
	if err != nil {
		return domain.SlotTime{}, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return domain.SlotTime{}, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, start, end)
	}
	return domain.SlotTime{StartTime: start, EndTime: end}, nil
}

// normalizeBatch размер пакета, порядок времени и уникальность начала внутри пакета
func normalizeBatch(slots []domain.SlotTime) ([]domain.SlotTime, error) {
	if len(slots) < domain.MinBulkSlots || len(slots) > domain.MaxBulkSlots {
		return nil, fmt.Errorf("%w: between %d and %d slots are required, got %d",
			ErrInvalidInput, domain.MinBulkSlots, domain.MaxBulkSlots, len(slots))
	}

	out := make([]domain.SlotTime, 0, len(slots))
	seen := make(map[types.TimeString]struct{}, len(slots))
	for _, raw := range slots {
		st, err := normalizeSlotTime(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[st.StartTime]; ok {
			return nil, fmt.Errorf("%w: start time %s is repeated in the request", ErrDuplicateSlot, st.StartTime)
		}
		seen[st.StartTime] = struct{}{}
		out = append(out, st)
	}
	return out, nil
}

// findDuplicate первое время начала из пакета, уже занятое существующим слотом
func findDuplicate(existing []types.TimeString, slots []domain.SlotTime) (types.TimeString, bool) {
	taken := make(map[types.TimeString]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}
	for _, st := range slots {
		if _, ok := taken[st.StartTime]; ok {
			return st.StartTime, true
		}
	}
	return "", false
}
