package domain

import "time"

// Политика бронирования по умолчанию
const (
	DefaultDailySlotCapacity  = 8
	DefaultCancellationWindow = 2 * time.Hour
	DefaultInactivityPeriod   = 10 * 24 * time.Hour
	DefaultCancellationReason = "Cancelled by user"
)

// Ограничения входных данных
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinBulkSlots                = 1
	MaxBulkSlots                = DefaultDailySlotCapacity
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых запись занимает слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// AllStatuses все допустимые статусы записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
