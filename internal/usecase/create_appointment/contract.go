package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	LockByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// CatalogRepository интерфейс каталога стилистов и услуг
type CatalogRepository interface {
	GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Reserve(ctx context.Context, id uuid.UUID) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error)
	ExistsActiveForCustomerAt(ctx context.Context, customerID uuid.UUID, date time.Time, startTime types.TimeString) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics доменные счётчики бронирования
type Metrics interface {
	IncAppointmentCreated()
	IncBookingConflict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
