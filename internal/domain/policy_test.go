package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestBookingPolicy_IsPastDate(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	policy := BookingPolicy{Location: moscow}

	// 22:30 UTC 18-го = 01:30 19-го по Москве
	now := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC)

	assert.True(t, policy.IsPastDate(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, policy.IsPastDate(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, policy.IsPastDate(time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), now))

	assert.False(t, DefaultBookingPolicy().IsPastDate(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), now))
}

func TestBookingPolicy_ZoneDefaultsToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, BookingPolicy{}.Zone())
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 10, 20, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.Add(time.Minute)))
}

func TestTimeSlot_StartsAt(t *testing.T) {
	loc := time.FixedZone("salon", 3*60*60)
	slot := TimeSlot{Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), StartTime: types.TimeString("10:00")}

	start, err := slot.StartsAt(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC), start.UTC())
}

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, AppointmentStatus("DONE").IsValid())

	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())

	a := Appointment{Status: StatusConfirmed}
	assert.True(t, a.IsActive())
	assert.True(t, a.CanBeCancelled())

	a.Status = StatusCancelled
	assert.False(t, a.IsActive())
	assert.False(t, a.CanBeCancelled())
}
