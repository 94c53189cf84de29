package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid returns true if the status belongs to the status domain
func (s AppointmentStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses no transition leaves
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a customer booking of a stylist slot
type Appointment struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	StylistID  uuid.UUID
	ServiceID  uuid.UUID
	TimeSlotID uuid.UUID
	Notes      string
	Status     AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment is not in a terminal status
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal()
}

// IsOwnedBy returns true if the customer made the appointment
func (a *Appointment) IsOwnedBy(customerID uuid.UUID) bool {
	return a.CustomerID == customerID
}

// AppointmentDetails is an appointment joined with its customer, stylist, service and slot
type AppointmentDetails struct {
	Appointment

	Customer UserSummary
	Stylist  Stylist
	Service  Service
	TimeSlot TimeSlot
}

// AppointmentFilter фильтр списка записей; nil-поля не применяются
type AppointmentFilter struct {
	Status     *AppointmentStatus
	StylistID  *uuid.UUID
	CustomerID *uuid.UUID
	Date       *time.Time
	// SortAscending сортирует по дате и времени слота по возрастанию (иначе по убыванию)
	SortAscending bool
}
