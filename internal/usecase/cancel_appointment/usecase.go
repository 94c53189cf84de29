package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
)

// UseCase use case для отмены записи с освобождением слота
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	policy          domain.BookingPolicy
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		policy:          policy,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет запись и освобождает слот в одной транзакции.
// Окно отмены проверяется только для клиента.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.AppointmentDetails, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment=%s, actor=%s, role=%s", req.AppointmentID, req.ActorID, req.ActorRole)

	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	isCustomer := req.ActorRole == domain.RoleCustomer

	if isCustomer && !appointment.IsOwnedBy(req.ActorID) {
		uc.logger.Warn("CancelAppointment: customer id=%s does not own appointment id=%s", req.ActorID, appointment.ID)
		return nil, ErrNotOwner
	}

	switch appointment.Status {
	case domain.StatusCancelled:
		uc.logger.Warn("CancelAppointment: appointment id=%s is already cancelled", appointment.ID)
		return nil, ErrAlreadyCancelled
	case domain.StatusCompleted:
		uc.logger.Warn("CancelAppointment: appointment id=%s is completed", appointment.ID)
		return nil, ErrAlreadyCompleted
	}

	now := uc.timeProvider.Now()

	if isCustomer {
		slot, err := uc.slotRepo.GetByID(ctx, appointment.TimeSlotID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to get slot id=%s: %v", appointment.TimeSlotID, err)
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		slotStart, err := slot.StartsAt(uc.policy.Zone())
		if err != nil {
			uc.logger.Error("CancelAppointment: slot id=%s has invalid start time %q: %v", slot.ID, slot.StartTime, err)
			return nil, fmt.Errorf("%w: invalid slot start time: %v", ErrInternal, err)
		}

		if err := validateCancellationWindow(slotStart, now, uc.policy.CancellationWindow); err != nil {
			uc.logger.Warn("CancelAppointment: %v", err)
			return nil, err
		}
	}

	reason := domain.DefaultCancellationReason
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}

	var cancelled *domain.AppointmentDetails

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.appointmentRepo.Cancel(txCtx, appointment.ID, reason, now); err != nil {
			if errors.Is(err, appointmentRepo.ErrCannotCancel) {
				uc.logger.Warn("CancelAppointment: appointment id=%s changed to a terminal status concurrently", appointment.ID)
				return ErrAlreadyCancelled
			}
			uc.logger.Error("CancelAppointment: failed to cancel appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Release(txCtx, appointment.TimeSlotID); err != nil {
			uc.logger.Error("CancelAppointment: failed to release slot id=%s: %v", appointment.TimeSlotID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		details, err := uc.appointmentRepo.GetDetailsByID(txCtx, appointment.ID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to read back appointment id=%s: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to read back appointment: %v", ErrInternal, err)
		}
		cancelled = details

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentCancelled(string(req.ActorRole))
	uc.logger.Info("CancelAppointment: appointment id=%s cancelled by %s id=%s, slot id=%s released",
		appointment.ID, req.ActorRole, req.ActorID, appointment.TimeSlotID)

	return cancelled, nil
}
