package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

const table = "time_slots"

var columns = []string{
	"id",
	"stylist_id",
	"date",
	"start_time",
	"end_time",
	"is_booked",
	"created_at",
	"updated_at",
}

// Repository репозиторий временных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один слот
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	created, err := r.CreateBatch(ctx, []*domain.TimeSlot{slot})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch вставляет все слоты одним INSERT: либо все, либо ни одного
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if len(slots) == 0 {
		return slots, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).
		Columns("id", "stylist_id", "date", "start_time", "end_time", "is_booked")

	byID := make(map[uuid.UUID]*domain.TimeSlot, len(slots))
	for _, s := range slots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.Date = domain.DateOnly(s.Date)
		byID[s.ID] = s
		insert = insert.Values(s.ID, s.StylistID, s.Date, s.StartTime, s.EndTime, s.IsBooked)
	}

	query, args, err := insert.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}
		if s, ok := byID[id]; ok {
			s.CreatedAt = createdAt
			s.UpdatedAt = updatedAt
		}
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// CountByStylistAndDate количество слотов стилиста на дату (дневная ёмкость)
func (r *Repository) CountByStylistAndDate(ctx context.Context, stylistID uuid.UUID, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"stylist_id": stylistID, "date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByStylistAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByStylistAndDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListStartTimes времена начала существующих слотов стилиста на дату
func (r *Repository) ListStartTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From(table).
		Where(squirrel.Eq{"stylist_id": stylistID, "date": domain.DateOnly(date)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStartTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	starts := make([]types.TimeString, 0)
	for rows.Next() {
		var start types.TimeString
		if err := rows.Scan(&start); err != nil {
			return nil, fmt.Errorf("%w: ListStartTimes - scan start_time: %v", ErrScanRow, err)
		}
		starts = append(starts, start)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStartTimes - rows error: %v", ErrScanRow, err)
	}

	return starts, nil
}

// List получает слоты по фильтру, сортировка по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.StylistID != nil {
		builder = builder.Where(squirrel.Eq{"stylist_id": *filter.StylistID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": domain.DateOnly(*filter.Date)})
	}
	if filter.IsBooked != nil {
		builder = builder.Where(squirrel.Eq{"is_booked": *filter.IsBooked})
	}

	query, args, err := builder.OrderBy("date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListAvailable свободные слоты стилиста на календарный день по времени начала
func (r *Repository) ListAvailable(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]*domain.TimeSlot, error) {
	booked := false
	return r.List(ctx, domain.SlotFilter{
		StylistID: &stylistID,
		Date:      &date,
		IsBooked:  &booked,
	})
}

// Reserve условно занимает слот (compare-and-set по is_booked = false).
// Проигравший гонку получает ErrSlotAlreadyReserved.
func (r *Repository) Reserve(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSlotNotFound
		}
		return ErrSlotAlreadyReserved
	}

	return nil
}

// Release освобождает слот
func (r *Repository) Release(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// HasAppointments есть ли записи (в любом статусе), ссылающиеся на слот
func (r *Repository) HasAppointments(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("appointments").
		Where(squirrel.Eq{"time_slot_id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasAppointments - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasAppointments - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// Delete удаляет свободный слот, на который не ссылается ни одна запись
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		Where("NOT EXISTS (SELECT 1 FROM appointments a WHERE a.time_slot_id = time_slots.id)").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return ErrSlotInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSlotNotFound
		}
		return ErrSlotInUse
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.StylistID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Date = domain.DateOnly(s.Date)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
