package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
)

// UseCase use case для создания записи на слот
type UseCase struct {
	userRepo        UserRepository
	catalogRepo     CatalogRepository
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		catalogRepo:     catalogRepo,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Резервирование слота - условная запись (is_booked = false), проигравший гонку получает ErrSlotAlreadyBooked.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.AppointmentDetails, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: customer=%s, stylist=%s, service=%s, slot=%s",
		req.CustomerID, req.StylistID, req.ServiceID, req.TimeSlotID)

	now := uc.timeProvider.Now()

	// 0. Клиент должен существовать и иметь право бронировать
	customer, err := uc.userRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: customer id=%s not found", req.CustomerID)
			return nil, ErrCustomerNotEligible
		}
		uc.logger.Error("CreateAppointment: failed to get customer id=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	if !customer.CanBook(now) {
		uc.logger.Warn("CreateAppointment: customer id=%s is not eligible, status=%s, deleted=%t",
			customer.ID, customer.Status, customer.IsDeleted)
		return nil, ErrCustomerNotEligible
	}

	// 1. Стилист
	if _, err := uc.catalogRepo.GetStylistByID(ctx, req.StylistID); err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			uc.logger.Warn("CreateAppointment: stylist id=%s not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get stylist id=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: failed to get stylist: %v", ErrInternal, err)
	}

	// 2. Услуга и её владелец
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsOfferedBy(req.StylistID) {
		uc.logger.Warn("CreateAppointment: service id=%s belongs to stylist id=%s, not %s",
			service.ID, service.StylistID, req.StylistID)
		return nil, ErrServiceNotOffered
	}

	// 3. Слот, его владелец и занятость
	slot, err := uc.slotRepo.GetByID(ctx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("CreateAppointment: slot id=%s not found", req.TimeSlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get slot id=%s: %v", req.TimeSlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	if slot.StylistID != req.StylistID {
		uc.logger.Warn("CreateAppointment: slot id=%s belongs to stylist id=%s, not %s",
			slot.ID, slot.StylistID, req.StylistID)
		return nil, ErrSlotOwnershipMismatch
	}
	if !slot.IsAvailable() {
		uc.logger.Warn("CreateAppointment: slot id=%s is already booked", slot.ID)
		uc.metrics.IncBookingConflict("already_booked")
		return nil, ErrSlotAlreadyBooked
	}

	var created *domain.AppointmentDetails

	// 4. Проверка самоконфликта, резервирование и создание записи в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокировка строки клиента сериализует его параллельные бронирования
		if _, err := uc.userRepo.LockByID(txCtx, req.CustomerID); err != nil {
			uc.logger.Error("CreateAppointment: failed to lock customer id=%s: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to lock customer: %v", ErrInternal, err)
		}

		conflict, err := uc.appointmentRepo.ExistsActiveForCustomerAt(txCtx, req.CustomerID, slot.Date, slot.StartTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check self conflict: %v", err)
			return fmt.Errorf("%w: failed to check self conflict: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateAppointment: customer id=%s already has an appointment on %s at %s",
				req.CustomerID, slot.Date.Format(domain.DateFormat), slot.StartTime)
			uc.metrics.IncBookingConflict("self_conflict")
			return ErrSelfConflict
		}

		if err := uc.slotRepo.Reserve(txCtx, slot.ID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotAlreadyReserved):
				uc.logger.Warn("CreateAppointment: lost reservation race for slot id=%s", slot.ID)
				uc.metrics.IncBookingConflict("already_booked")
				return ErrSlotAlreadyBooked
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateAppointment: slot id=%s disappeared before reservation", slot.ID)
				return ErrSlotNotFound
			default:
				uc.logger.Error("CreateAppointment: failed to reserve slot id=%s: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		appointment, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			CustomerID: req.CustomerID,
			StylistID:  req.StylistID,
			ServiceID:  req.ServiceID,
			TimeSlotID: slot.ID,
			Notes:      req.Notes,
			Status:     domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot id=%s already has an active appointment", slot.ID)
				uc.metrics.IncBookingConflict("already_booked")
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created, err = uc.appointmentRepo.GetDetailsByID(txCtx, appointment.ID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to read back appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to read back appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s for slot id=%s", created.ID, slot.ID)

	return created, nil
}
