package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentRepository записи в памяти, ошибки совпадают с postgres-репозиторием
type AppointmentRepository struct {
	s *Store
}

// Create отсекает вторую активную запись на слот (аналог частичного уникального индекса)
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	if r.s.slotHasActiveAppointment(a.TimeSlotID, uuid.Nil) {
		return nil, appointmentRepo.ErrSlotTaken
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.s.clock.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	r.s.appointments[a.ID] = *a
	return a, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) GetDetailsByID(ctx context.Context, id uuid.UUID) (*domain.AppointmentDetails, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}

	d, ok := r.s.details(a)
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return d, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	list := make([]*domain.AppointmentDetails, 0)
	for _, a := range r.s.appointments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.StylistID != nil && a.StylistID != *filter.StylistID {
			continue
		}
		if filter.CustomerID != nil && a.CustomerID != *filter.CustomerID {
			continue
		}

		d, ok := r.s.details(a)
		if !ok {
			continue
		}
		if filter.Date != nil && !d.TimeSlot.Date.Equal(domain.DateOnly(*filter.Date)) {
			continue
		}
		list = append(list, d)
	}

	sort.SliceStable(list, func(i, j int) bool {
		if filter.SortAscending {
			return slotLess(&list[i].TimeSlot, &list[j].TimeSlot)
		}
		return slotLess(&list[j].TimeSlot, &list[i].TimeSlot)
	})

	return list, nil
}

func (r *AppointmentRepository) ExistsActiveForCustomerAt(
	ctx context.Context,
	customerID uuid.UUID,
	date time.Time,
	startTime types.TimeString,
) (bool, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	day := domain.DateOnly(date)
	for _, a := range r.s.appointments {
		if a.CustomerID != customerID || !a.IsActive() {
			continue
		}
		s, ok := r.s.slots[a.TimeSlotID]
		if ok && s.Date.Equal(day) && s.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	a, ok := r.s.appointments[id]
	if !ok || !a.CanBeCancelled() {
		return appointmentRepo.ErrCannotCancel
	}

	at := cancelledAt
	a.Status = domain.StatusCancelled
	a.CancellationReason = &reason
	a.CancelledAt = &at
	a.UpdatedAt = r.s.clock.Now()

	r.s.appointments[id] = a
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, reason *string) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}

	if status != domain.StatusCancelled && !a.IsActive() && r.s.slotHasActiveAppointment(a.TimeSlotID, id) {
		return appointmentRepo.ErrSlotTaken
	}

	a.Status = status
	if reason != nil {
		v := *reason
		a.CancellationReason = &v
	}
	a.UpdatedAt = r.s.clock.Now()

	r.s.appointments[id] = a
	return nil
}

func (s *Store) slotHasActiveAppointment(slotID, except uuid.UUID) bool {
	for id, a := range s.appointments {
		if id != except && a.TimeSlotID == slotID && a.IsActive() {
			return true
		}
	}
	return false
}

// details собирает запись со связанными сущностями (аналог JOIN)
func (s *Store) details(a domain.Appointment) (*domain.AppointmentDetails, bool) {
	customer, ok := s.users[a.CustomerID]
	if !ok {
		return nil, false
	}
	stylist, ok := s.stylists[a.StylistID]
	if !ok {
		return nil, false
	}
	service, ok := s.services[a.ServiceID]
	if !ok {
		return nil, false
	}
	slot, ok := s.slots[a.TimeSlotID]
	if !ok {
		return nil, false
	}

	if owner, ok := s.users[stylist.UserID]; ok {
		stylist.FullName = owner.FullName
	}

	return &domain.AppointmentDetails{
		Appointment: a,
		Customer: domain.UserSummary{
			ID:          customer.ID,
			FullName:    customer.FullName,
			Email:       customer.Email,
			PhoneNumber: customer.PhoneNumber,
		},
		Stylist:  stylist,
		Service:  service,
		TimeSlot: slot,
	}, true
}
