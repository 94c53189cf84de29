package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the user role carried in access tokens
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStylist  Role = "STYLIST"
	RoleAdmin    Role = "ADMIN"
)

// UserStatus is the account status
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
	UserBlocked   UserStatus = "BLOCKED"
	UserInactive  UserStatus = "INACTIVE"
)

// User is an account of any role
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	PhoneNumber    string
	Role           Role
	Status         UserStatus
	SuspendedUntil *time.Time
	LastLoginAt    *time.Time
	IsDeleted      bool
}

// UserSummary is the public part of a user embedded in appointment reads
type UserSummary struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
}

// IsSuspensionElapsed returns true if the user is suspended and the suspension is over
func (u *User) IsSuspensionElapsed(now time.Time) bool {
	if u.Status != UserSuspended {
		return false
	}
	return u.SuspendedUntil == nil || !now.Before(*u.SuspendedUntil)
}

// EffectiveStatus treats an elapsed suspension as ACTIVE
func (u *User) EffectiveStatus(now time.Time) UserStatus {
	if u.IsSuspensionElapsed(now) {
		return UserActive
	}
	return u.Status
}

// IsInactiveFor returns true if the last login is older than period.
// A user who never logged in counts as inactive since the epoch.
func (u *User) IsInactiveFor(period time.Duration, now time.Time) bool {
	last := time.Unix(0, 0)
	if u.LastLoginAt != nil {
		last = *u.LastLoginAt
	}
	return now.Sub(last) > period
}

// CanBook returns true if the user may create appointments
func (u *User) CanBook(now time.Time) bool {
	return !u.IsDeleted && u.EffectiveStatus(now) == UserActive
}
