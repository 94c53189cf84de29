package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository репозиторий пользователей (только то, что нужно авторизации и бронированию)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.get(ctx, id, false)
}

// LockByID получает пользователя с блокировкой строки (FOR UPDATE) в текущей транзакции.
// Сериализует бронирования одного клиента.
func (r *Repository) LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"full_name",
		"email",
		"phone_number",
		"role",
		"status",
		"suspended_until",
		"last_login_at",
		"is_deleted",
	).
		From("users").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	var phone sql.NullString
	var suspendedUntil, lastLoginAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&phone,
		&u.Role,
		&u.Status,
		&suspendedUntil,
		&lastLoginAt,
		&u.IsDeleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get - scan user: %v", ErrScanRow, err)
	}

	u.PhoneNumber = phone.String
	if suspendedUntil.Valid {
		t := suspendedUntil.Time
		u.SuspendedUntil = &t
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		u.LastLoginAt = &t
	}

	return &u, nil
}

// UpdateStatus меняет статус пользователя и срок блокировки
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus, suspendedUntil *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("status", status).
		Set("suspended_until", suspendedUntil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
