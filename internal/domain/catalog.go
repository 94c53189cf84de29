package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stylist is a catalog entry owned by a STYLIST user
type Stylist struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FullName       string
	Specialization string
	IsDeleted      bool
	CreatedAt      time.Time
}

// Service is a catalog item offered by exactly one stylist
type Service struct {
	ID              uuid.UUID
	StylistID       uuid.UUID
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	IsDeleted       bool
}

// IsOfferedBy returns true if the service belongs to the stylist
func (s *Service) IsOfferedBy(stylistID uuid.UUID) bool {
	return s.StylistID == stylistID
}
