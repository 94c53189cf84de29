package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// Repository читает каталог стилистов и услуг.
// Жизненным циклом каталога управляет админка, здесь только чтение.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStylistByID получает стилиста. Удалённые стилисты считаются отсутствующими.
func (r *Repository) GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	return r.getStylist(ctx, id, false)
}

// LockStylist получает стилиста с блокировкой строки (FOR UPDATE) в текущей транзакции.
// Сериализует публикацию слотов одного стилиста.
func (r *Repository) LockStylist(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	return r.getStylist(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getStylist(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"st.id",
		"st.user_id",
		"u.full_name",
		"st.specialization",
		"st.is_deleted",
		"st.created_at",
	).
		From("stylists st").
		Join("users u ON u.id = st.user_id").
		Where(squirrel.Eq{"st.id": id, "st.is_deleted": false})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE OF st")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getStylist - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Stylist
	var specialization sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.UserID,
		&s.FullName,
		&specialization,
		&s.IsDeleted,
		&s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getStylist - scan stylist: %v", ErrScanRow, err)
	}

	s.Specialization = specialization.String
	return &s, nil
}

// GetServiceByID получает услугу. Удалённые услуги считаются отсутствующими.
func (r *Repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"stylist_id",
		"name",
		"description",
		"price",
		"duration_minutes",
		"is_deleted",
	).
		From("services").
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	var description sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.StylistID,
		&s.Name,
		&description,
		&s.Price,
		&s.DurationMinutes,
		&s.IsDeleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	s.Description = description.String
	return &s, nil
}
