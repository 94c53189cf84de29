package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
	ListAvailable(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]*domain.TimeSlot, error)
	HasAppointments(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
