package appointment

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

const table = "appointments"

var columns = []string{
	"id",
	"customer_id",
	"stylist_id",
	"service_id",
	"time_slot_id",
	"notes",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// detailsColumns колонки записи вместе с клиентом, стилистом, услугой и слотом
var detailsColumns = []string{
	"a.id",
	"a.customer_id",
	"a.stylist_id",
	"a.service_id",
	"a.time_slot_id",
	"a.notes",
	"a.status",
	"a.cancellation_reason",
	"a.cancelled_at",
	"a.created_at",
	"a.updated_at",
	"cu.full_name",
	"cu.email",
	"cu.phone_number",
	"st.user_id",
	"su.full_name",
	"st.specialization",
	"sv.name",
	"sv.description",
	"sv.price",
	"sv.duration_minutes",
	"ts.date",
	"ts.start_time",
	"ts.end_time",
	"ts.is_booked",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись. Вторая активная запись на тот же слот
// отсекается частичным уникальным индексом и возвращает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"customer_id",
			"stylist_id",
			"service_id",
			"time_slot_id",
			"notes",
			"status",
		).
		Values(
			a.ID,
			a.CustomerID,
			a.StylistID,
			a.ServiceID,
			a.TimeSlotID,
			a.Notes,
			a.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID без связанных сущностей
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
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

	var a domain.Appointment
	var notes, reason sql.NullString
	var cancelledAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.CustomerID,
		&a.StylistID,
		&a.ServiceID,
		&a.TimeSlotID,
		&notes,
		&a.Status,
		&reason,
		&cancelledAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	applyNullable(&a, notes, reason, cancelledAt)
	return &a, nil
}

// GetDetailsByID получает запись вместе с клиентом, стилистом, услугой и слотом
func (r *Repository) GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsQuery().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan appointment: %v", ErrScanRow, err)
	}

	return details, nil
}

// List получает записи по фильтру.
// Сортировка по дате и времени начала слота: по возрастанию или убыванию.
//
// Примеры:
//
//  1. Записи клиента со статусом:
//     filter := domain.AppointmentFilter{CustomerID: &id, Status: &status}
//
//  2. Расписание стилиста на день:
//     filter := domain.AppointmentFilter{StylistID: &id, Date: &date, SortAscending: true}
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := detailsQuery()

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.StylistID != nil {
		builder = builder.Where(squirrel.Eq{"a.stylist_id": *filter.StylistID})
	}
	if filter.CustomerID != nil {
		builder = builder.Where(squirrel.Eq{"a.customer_id": *filter.CustomerID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"ts.date": domain.DateOnly(*filter.Date)})
	}

	if filter.SortAscending {
		builder = builder.OrderBy("ts.date ASC", "ts.start_time ASC")
	} else {
		builder = builder.OrderBy("ts.date DESC", "ts.start_time DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		list = append(list, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return list, nil
}

// ExistsActiveForCustomerAt есть ли у клиента неотменённая запись на ту же дату и время
// у любого стилиста
func (r *Repository) ExistsActiveForCustomerAt(
	ctx context.Context,
	customerID uuid.UUID,
	date time.Time,
	startTime types.TimeString,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table + " a").
		Join("time_slots ts ON ts.id = a.time_slot_id").
		Where(squirrel.Eq{
			"a.customer_id": customerID,
			"ts.date":       domain.DateOnly(date),
			"ts.start_time": startTime,
		}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForCustomerAt - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForCustomerAt - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// Cancel условно отменяет запись, если она не в терминальном статусе
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// UpdateStatus безусловно меняет статус; причина обновляется, только если передана
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if reason != nil {
		builder = builder.Set("cancellation_reason", *reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func detailsQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From(table + " a").
		Join("users cu ON cu.id = a.customer_id").
		Join("stylists st ON st.id = a.stylist_id").
		Join("users su ON su.id = st.user_id").
		Join("services sv ON sv.id = a.service_id").
		Join("time_slots ts ON ts.id = a.time_slot_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row rowScanner) (*domain.AppointmentDetails, error) {
	var d domain.AppointmentDetails
	var notes, reason, phone, specialization, description sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.CustomerID,
		&d.StylistID,
		&d.ServiceID,
		&d.TimeSlotID,
		&notes,
		&d.Status,
		&reason,
		&cancelledAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Customer.FullName,
		&d.Customer.Email,
		&phone,
		&d.Stylist.UserID,
		&d.Stylist.FullName,
		&specialization,
		&d.Service.Name,
		&description,
		&d.Service.Price,
		&d.Service.DurationMinutes,
		&d.TimeSlot.Date,
		&d.TimeSlot.StartTime,
		&d.TimeSlot.EndTime,
		&d.TimeSlot.IsBooked,
	)
	if err != nil {
		return nil, err
	}

	applyNullable(&d.Appointment, notes, reason, cancelledAt)

	d.Customer.ID = d.CustomerID
	d.Customer.PhoneNumber = phone.String
	d.Stylist.ID = d.StylistID
	d.Stylist.Specialization = specialization.String
	d.Service.ID = d.ServiceID
	d.Service.StylistID = d.StylistID
	d.Service.Description = description.String
	d.TimeSlot.ID = d.TimeSlotID
	d.TimeSlot.StylistID = d.StylistID
	d.TimeSlot.Date = domain.DateOnly(d.TimeSlot.Date)

	return &d, nil
}

func applyNullable(a *domain.Appointment, notes, reason sql.NullString, cancelledAt sql.NullTime) {
	a.Notes = notes.String
	if reason.Valid {
		r := reason.String
		a.CancellationReason = &r
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		a.CancelledAt = &t
	}
}
