package publish_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// CatalogRepository интерфейс каталога стилистов
type CatalogRepository interface {
	GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
	LockStylist(ctx context.Context, id uuid.UUID) (*domain.Stylist, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountByStylistAndDate(ctx context.Context, stylistID uuid.UUID, date time.Time) (int, error)
	ListStartTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]types.TimeString, error)
	CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счётчик опубликованных слотов
type Metrics interface {
	AddSlotsPublished(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
