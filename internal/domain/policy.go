package domain

import "time"

// BookingPolicy параметры правил бронирования.
// Сервис работает в одной операционной временной зоне (Location).
type BookingPolicy struct {
	Location           *time.Location
	DailySlotCapacity  int
	CancellationWindow time.Duration
	InactivityPeriod   time.Duration
}

// DefaultBookingPolicy политика по умолчанию в UTC
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		Location:           time.UTC,
		DailySlotCapacity:  DefaultDailySlotCapacity,
		CancellationWindow: DefaultCancellationWindow,
		InactivityPeriod:   DefaultInactivityPeriod,
	}
}

// Today текущая календарная дата в операционной зоне
func (p BookingPolicy) Today(now time.Time) time.Time {
	return DateOnly(now.In(p.Zone()))
}

// IsPastDate дата строго раньше сегодняшней (время суток не учитывается)
func (p BookingPolicy) IsPastDate(date, now time.Time) bool {
	return DateOnly(date).Before(p.Today(now))
}

// Zone операционная временная зона (UTC, если не задана)
func (p BookingPolicy) Zone() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// DateOnly отбрасывает время суток, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает календарные даты
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
