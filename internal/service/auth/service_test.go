package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memory.Store, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(testNow)
	store := memory.New(clk)
	svc := NewService(store.Users(), testSecret, time.Hour, 180*24*time.Hour, clk, logger.NewNop())
	return svc, store, clk
}

func activeUser(store *memory.Store, role domain.Role) domain.User {
	return store.AddUser(domain.User{
		FullName:    "Anna",
		Email:       "anna@example.com",
		Role:        role,
		Status:      domain.UserActive,
		LastLoginAt: ptr.Ptr(testNow.Add(-time.Hour)),
	})
}

func TestAuthorize_ValidToken(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := activeUser(store, domain.RoleCustomer)

	token, err := svc.IssueToken(user.ID, user.Email, domain.RoleCustomer)
	require.NoError(t, err)

	for _, raw := range []string{token, "Bearer " + token, "bearer " + token} {
		principal, err := svc.Authorize(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.UserID)
		assert.Equal(t, domain.RoleCustomer, principal.Role)
		assert.Equal(t, user.Email, principal.Email)
	}
}

func TestAuthorize_RejectsBadTokens(t *testing.T) {
	svc, store, clk := newTestService(t)
	user := activeUser(store, domain.RoleCustomer)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           user.ID.String(),
		Role:             domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID.String(),
		Role:   domain.RoleCustomer,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           user.ID.String(),
		Role:             "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "42",
		Role:             domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unknownUser, err := svc.IssueToken(uuid.New(), "ghost@example.com", domain.RoleCustomer)
	require.NoError(t, err)

	expired, err := svc.IssueToken(user.ID, user.Email, domain.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		advance time.Duration
		wantErr error
	}{
		{name: "empty", token: "", wantErr: ErrMissingToken},
		{name: "bearer only", token: "Bearer ", wantErr: ErrInvalidToken},
		{name: "garbage", token: "not-a-jwt", wantErr: ErrInvalidToken},
		{name: "foreign secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "no expiration", token: noExp, wantErr: ErrInvalidToken},
		{name: "unknown role", token: badRole, wantErr: ErrInvalidToken},
		{name: "invalid user id", token: badID, wantErr: ErrInvalidToken},
		{name: "unknown user", token: unknownUser, wantErr: ErrUserNotFound},
		{name: "expired", token: expired, advance: 2 * time.Hour, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk.Set(testNow.Add(tt.advance))
			_, err := svc.Authorize(context.Background(), tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorize_AccountStatus(t *testing.T) {
	svc, store, _ := newTestService(t)

	deleted := activeUser(store, domain.RoleCustomer)
	deleted.IsDeleted = true
	store.AddUser(deleted)

	blocked := activeUser(store, domain.RoleCustomer)
	blocked.Status = domain.UserBlocked
	store.AddUser(blocked)

	suspended := activeUser(store, domain.RoleCustomer)
	suspended.Status = domain.UserSuspended
	suspended.SuspendedUntil = ptr.Ptr(testNow.Add(24 * time.Hour))
	store.AddUser(suspended)

	tests := []struct {
		name    string
		user    domain.User
		wantErr error
	}{
		{name: "deleted", user: deleted, wantErr: ErrAccountDeleted},
		{name: "blocked", user: blocked, wantErr: ErrAccountBlocked},
		{name: "suspended", user: suspended, wantErr: ErrAccountSuspended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.IssueToken(tt.user.ID, tt.user.Email, tt.user.Role)
			require.NoError(t, err)

			_, err = svc.Authorize(context.Background(), token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrForbidden)
		})
	}
}

func TestAuthorize_ElapsedSuspensionReactivates(t *testing.T) {
	svc, store, _ := newTestService(t)

	user := activeUser(store, domain.RoleCustomer)
	user.Status = domain.UserSuspended
	user.SuspendedUntil = ptr.Ptr(testNow.Add(-time.Minute))
	store.AddUser(user)

	token, err := svc.IssueToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	_, err = svc.Authorize(context.Background(), token)
	require.NoError(t, err)

	got, err := store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserActive, got.Status)
	assert.Nil(t, got.SuspendedUntil)
}

func TestAuthorize_LongAbsenceMarksInactive(t *testing.T) {
	svc, store, _ := newTestService(t)

	user := activeUser(store, domain.RoleCustomer)
	user.LastLoginAt = ptr.Ptr(testNow.Add(-181 * 24 * time.Hour))
	store.AddUser(user)

	token, err := svc.IssueToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	principal, err := svc.Authorize(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)

	got, err := store.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserInactive, got.Status)
	assert.False(t, got.CanBook(testNow))
}

func TestPrincipal_HasRole(t *testing.T) {
	p := &Principal{Role: domain.RoleStylist}

	assert.True(t, p.HasRole())
	assert.True(t, p.HasRole(domain.RoleStylist, domain.RoleAdmin))
	assert.False(t, p.HasRole(domain.RoleAdmin))
}
