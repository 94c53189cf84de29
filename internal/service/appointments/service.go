package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// Service сервис чтения записей и административной смены статуса
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	details, err := s.appointmentRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(details), nil
}

// GetMyAppointments записи клиента, новые сверху
func (s *Service) GetMyAppointments(ctx context.Context, req *models.GetMyAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetMyAppointments: fetching appointments for customer=%s, status=%v", req.CustomerID, req.Status)

	filter := domain.AppointmentFilter{CustomerID: &req.CustomerID}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("GetMyAppointments: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetMyAppointments: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetMyAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyAppointments: successfully fetched %d appointments for customer=%s", len(list), req.CustomerID)
	return models.FromDomainAppointmentList(list), nil
}

// GetStylistAppointments расписание стилиста по возрастанию даты и времени
func (s *Service) GetStylistAppointments(ctx context.Context, req *models.GetStylistAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStylistAppointments: fetching appointments for stylist=%s, status=%v, date=%v",
		req.StylistID, req.Status, req.Date)

	if _, err := s.catalogRepo.GetStylistByID(ctx, req.StylistID); err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			s.logger.Warn("GetStylistAppointments: stylist id=%s not found", req.StylistID)
			return nil, ErrStylistNotFound
		}
		s.logger.Error("GetStylistAppointments: failed to get stylist id=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: GetStylistAppointments - catalog error: %v", ErrInternal, err)
	}

	filter := domain.AppointmentFilter{
		StylistID:     &req.StylistID,
		Date:          req.Date,
		SortAscending: true,
	}
	if err := applyStatus(&filter, req.Status); err != nil {
		s.logger.Warn("GetStylistAppointments: invalid status=%s", *req.Status)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetStylistAppointments: repository error for stylist=%s: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: GetStylistAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStylistAppointments: successfully fetched %d appointments for stylist=%s", len(list), req.StylistID)
	return models.FromDomainAppointmentList(list), nil
}

// GetAllAppointments все записи по фильтру, новые сверху.
//
// Примеры использования:
// - Все записи: GetAllAppointments(ctx, &GetAllAppointmentsRequest{})
// - Подтверждённые записи стилиста на дату: StylistID, Date и Status = "CONFIRMED"
func (s *Service) GetAllAppointments(ctx context.Context, req *models.GetAllAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAllAppointments: fetching appointments, status=%v, stylist=%v, customer=%v, date=%v",
		req.Status, req.StylistID, req.CustomerID, req.Date)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetAllAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllAppointments: successfully fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// UpdateStatus административно выставляет статус записи.
// Слот при переводе в CANCELLED не освобождается: для этого есть отдельная отмена.
// Возврат из CANCELLED/COMPLETED в активный статус слот тоже не трогает.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s, status=%s", id, req.Status)

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}
	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var updated *domain.AppointmentDetails

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: failed to get appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, status, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				s.logger.Warn("UpdateStatus: slot id=%s already has another active appointment", current.TimeSlotID)
				return ErrSlotTaken
			}
			s.logger.Error("UpdateStatus: failed to update appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if status == domain.StatusCancelled && current.Status != domain.StatusCancelled {
			s.logger.Warn("UpdateStatus: appointment id=%s set to CANCELLED by status update, slot id=%s stays booked",
				id, current.TimeSlotID)
		}
		if current.Status.IsTerminal() && !status.IsTerminal() {
			s.logger.Warn("UpdateStatus: appointment id=%s reactivated from %s to %s, slot id=%s booking flag is not changed",
				id, current.Status, status, current.TimeSlotID)
		}

		updated, err = s.appointmentRepo.GetDetailsByID(txCtx, id)
		if err != nil {
			s.logger.Error("UpdateStatus: failed to read back appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, status)
	return models.FromDomainAppointment(updated), nil
}

func applyStatus(filter *domain.AppointmentFilter, raw *string) error {
	if raw == nil || *raw == "" {
		return nil
	}
	status, err := models.ToDomainStatus(*raw)
	if err != nil {
		return ErrInvalidStatus
	}
	filter.Status = &status
	return nil
}
