package cancel_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	Release(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics доменные счётчики отмен
type Metrics interface {
	IncAppointmentCancelled(role string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
