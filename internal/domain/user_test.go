package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_CanBook(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "active", user: User{Status: UserActive}, want: true},
		{name: "deleted", user: User{Status: UserActive, IsDeleted: true}, want: false},
		{name: "blocked", user: User{Status: UserBlocked}, want: false},
		{name: "inactive", user: User{Status: UserInactive}, want: false},
		{name: "suspended until future", user: User{Status: UserSuspended, SuspendedUntil: &future}, want: false},
		{name: "suspension elapsed", user: User{Status: UserSuspended, SuspendedUntil: &past}, want: true},
		{name: "suspension ends now", user: User{Status: UserSuspended, SuspendedUntil: &now}, want: true},
		{name: "suspended without date", user: User{Status: UserSuspended}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.CanBook(now))
		})
	}
}

func TestUser_IsInactiveFor(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	period := DefaultInactivityPeriod

	exactly := now.Add(-period)
	over := now.Add(-period - time.Second)
	recent := now.Add(-time.Hour)

	assert.False(t, (&User{LastLoginAt: &recent}).IsInactiveFor(period, now))
	assert.False(t, (&User{LastLoginAt: &exactly}).IsInactiveFor(period, now))
	assert.True(t, (&User{LastLoginAt: &over}).IsInactiveFor(period, now))
	assert.True(t, (&User{}).IsInactiveFor(period, now), "never logged in")
}
