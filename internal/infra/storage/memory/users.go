package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// UserRepository пользователи в памяти
type UserRepository struct {
	s *Store
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

// LockByID внутри единицы работы хранилище уже заблокировано целиком
func (r *UserRepository) LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus, suspendedUntil *time.Time) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	u, ok := r.s.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}

	u.Status = status
	u.SuspendedUntil = nil
	if suspendedUntil != nil {
		t := *suspendedUntil
		u.SuspendedUntil = &t
	}

	r.s.users[id] = u
	return nil
}
