package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
)

// Service сервис чтения и удаления слотов
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetSlots слоты по фильтру, сортировка по дате и времени начала
func (s *Service) GetSlots(ctx context.Context, req *models.GetSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("GetSlots: stylist=%v, date=%v, isBooked=%v", req.StylistID, req.Date, req.IsBooked)

	list, err := s.slotRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(list), nil
}

// GetAvailableSlots свободные слоты стилиста на календарный день по времени начала
func (s *Service) GetAvailableSlots(ctx context.Context, stylistID uuid.UUID, date time.Time) (*models.SlotListResponse, error) {
	if stylistID == uuid.Nil || date.IsZero() {
		return nil, fmt.Errorf("%w: stylistId and date are required", ErrInvalidInput)
	}

	s.logger.Info("GetAvailableSlots: stylist=%s, date=%s", stylistID, date.Format(domain.DateFormat))

	list, err := s.slotRepo.ListAvailable(ctx, stylistID, date)
	if err != nil {
		s.logger.Error("GetAvailableSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailableSlots: %d free slot(s) for stylist=%s", len(list), stylistID)
	return models.FromDomainSlotList(list), nil
}

// DeleteSlot удаляет свободный слот без записей
func (s *Service) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteSlot: slot id=%s", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("DeleteSlot: slot id=%s not found", id)
				return ErrSlotNotFound
			}
			s.logger.Error("DeleteSlot: failed to get slot id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}

		if slot.IsBooked {
			s.logger.Warn("DeleteSlot: slot id=%s is booked", id)
			return ErrSlotInUse
		}

		referenced, err := s.slotRepo.HasAppointments(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteSlot: failed to check appointments of slot id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}
		if referenced {
			s.logger.Warn("DeleteSlot: slot id=%s is referenced by appointments", id)
			return ErrSlotInUse
		}

		if err := s.slotRepo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrSlotInUse):
				return ErrSlotInUse
			default:
				s.logger.Error("DeleteSlot: failed to delete slot id=%s: %v", id, err)
				return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("DeleteSlot: slot id=%s deleted", id)
	return nil
}
