package publish_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
)

// UseCase use case публикации слотов стилиста с дневным лимитом
type UseCase struct {
	catalogRepo  CatalogRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       domain.BookingPolicy
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		policy:       policy,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateSlot создает один слот
func (uc *UseCase) CreateSlot(ctx context.Context, req *CreateSlotRequest) (*domain.TimeSlot, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if err := validateStylistAndDate(req.StylistID, req.Date); err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	st, err := normalizeSlotTime(domain.SlotTime{StartTime: req.StartTime, EndTime: req.EndTime})
	if err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := uc.publish(ctx, "CreateSlot", req.StylistID, req.Date, []domain.SlotTime{st})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateSlotsBulk создает пакет слотов на один день: либо все, либо ни одного
func (uc *UseCase) CreateSlotsBulk(ctx context.Context, req *CreateSlotsBulkRequest) ([]*domain.TimeSlot, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if err := validateStylistAndDate(req.StylistID, req.Date); err != nil {
		uc.logger.Warn("CreateSlotsBulk: validation failed: %v", err)
		return nil, err
	}
	times, err := normalizeBatch(req.Slots)
	if err != nil {
		uc.logger.Warn("CreateSlotsBulk: validation failed: %v", err)
		return nil, err
	}

	return uc.publish(ctx, "CreateSlotsBulk", req.StylistID, req.Date, times)
}

func (uc *UseCase) publish(
	ctx context.Context,
	op string,
	stylistID uuid.UUID,
	date time.Time,
	times []domain.SlotTime,
) ([]*domain.TimeSlot, error) {
	day := domain.DateOnly(date)
	uc.logger.Info("%s: stylist=%s, date=%s, slots=%d", op, stylistID, day.Format(domain.DateFormat), len(times))

	if _, err := uc.catalogRepo.GetStylistByID(ctx, stylistID); err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			uc.logger.Warn("%s: stylist id=%s not found", op, stylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("%s: failed to get stylist id=%s: %v", op, stylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	if uc.policy.IsPastDate(day, uc.timeProvider.Now()) {
		uc.logger.Warn("%s: date %s is in the past", op, day.Format(domain.DateFormat))
		return nil, ErrPastDate
	}

	var created []*domain.TimeSlot

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокировка стилиста сериализует проверку лимита и вставку
		if _, err := uc.catalogRepo.LockStylist(txCtx, stylistID); err != nil {
			if errors.Is(err, catalogRepo.ErrStylistNotFound) {
				return ErrStylistNotFound
			}
			uc.logger.Error("%s: failed to lock stylist id=%s: %v", op, stylistID, err)
			return fmt.Errorf("%w: failed to lock stylist: %v", ErrInternal, err)
		}

		existing, err := uc.slotRepo.CountByStylistAndDate(txCtx, stylistID, day)
		if err != nil {
			uc.logger.Error("%s: failed to count slots: %v", op, err)
			return fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
		}

		capacity := uc.policy.DailySlotCapacity
		if existing+len(times) > capacity {
			capErr := &CapacityError{Capacity: capacity, Existing: existing, Requested: len(times)}
			uc.logger.Warn("%s: %v", op, capErr)
			return capErr
		}

		starts, err := uc.slotRepo.ListStartTimes(txCtx, stylistID, day)
		if err != nil {
			uc.logger.Error("%s: failed to list existing slots: %v", op, err)
			return fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
		}
		if dup, ok := findDuplicate(starts, times); ok {
			uc.logger.Warn("%s: slot at %s already exists for stylist id=%s on %s",
				op, dup, stylistID, day.Format(domain.DateFormat))
			return fmt.Errorf("%w: start time %s", ErrDuplicateSlot, dup)
		}

		slots := make([]*domain.TimeSlot, 0, len(times))
		for _, t := range times {
			slots = append(slots, &domain.TimeSlot{
				StylistID: stylistID,
				Date:      day,
				StartTime: t.StartTime,
				EndTime:   t.EndTime,
			})
		}

		created, err = uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			if errors.Is(err, slotRepo.ErrDuplicateSlot) {
				uc.logger.Warn("%s: unique violation on insert: %v", op, err)
				return ErrDuplicateSlot
			}
			uc.logger.Error("%s: failed to insert slots: %v", op, err)
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddSlotsPublished(len(created))
	uc.logger.Info("%s: created %d slot(s) for stylist id=%s on %s", op, len(created), stylistID, day.Format(domain.DateFormat))

	return created, nil
}
