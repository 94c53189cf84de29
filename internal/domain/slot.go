package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// TimeSlot represents a bookable window of a stylist on a calendar date
type TimeSlot struct {
	ID        uuid.UUID
	StylistID uuid.UUID
	Date      time.Time // date only, UTC midnight
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt returns the slot start instant in the given location
func (s *TimeSlot) StartsAt(loc *time.Location) (time.Time, error) {
	return s.StartTime.On(s.Date, loc)
}

// IsAvailable returns true if the slot can be reserved
func (s *TimeSlot) IsAvailable() bool {
	return !s.IsBooked
}

// SlotTime is a start/end pair used for slot publishing
type SlotTime struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SlotFilter filters slot listings; nil fields are ignored
type SlotFilter struct {
	StylistID *uuid.UUID
	Date      *time.Time
	IsBooked  *bool
}
