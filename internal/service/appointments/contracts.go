package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, reason *string) error
}

// CatalogRepository интерфейс каталога стилистов
type CatalogRepository interface {
	GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
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
