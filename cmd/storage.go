package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus, suspendedUntil *time.Time) error
}

type catalogStore interface {
	GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	LockStylist(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type slotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	CountByStylistAndDate(ctx context.Context, stylistID uuid.UUID, date time.Time) (int, error)
	ListStartTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]types.TimeString, error)
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
	ListAvailable(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]*domain.TimeSlot, error)
	Reserve(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
	HasAppointments(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
	ExistsActiveForCustomerAt(ctx context.Context, customerID uuid.UUID, date time.Time, startTime types.TimeString) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, reason *string) error
}

type unitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера
type storage struct {
	users        userStore
	catalog      catalogStore
	slots        slotStore
	appointments appointmentStore
	tx           unitOfWork

	memory *memory.Store // только для драйвера memory
	close  func()
}

// openStorage подключает postgres или поднимает хранилище в памяти
func openStorage(cfg *config.Config, m *metrics.Metrics, clk clock.Clock, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.New(clk)
		log.Info("Using in-memory storage, data is lost on restart")
		return &storage{
			users:        store.Users(),
			catalog:      store.Catalog(),
			slots:        store.Slots(),
			appointments: store.Appointments(),
			tx:           store,
			memory:       store,
			close:        func() {},
		}, nil

	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		stopPoolStats := make(chan struct{})
		wrappedDB := dbmetrics.WrapWithDefault(db, m, stopPoolStats)

		return &storage{
			users:        userRepo.NewRepository(wrappedDB),
			catalog:      catalogRepo.NewRepository(wrappedDB),
			slots:        slotRepo.NewRepository(wrappedDB),
			appointments: appointmentRepo.NewRepository(wrappedDB),
			tx:           txmanager.NewTransactionManager(wrappedDB, m),
			close: func() {
				close(stopPoolStats)
				_ = db.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
