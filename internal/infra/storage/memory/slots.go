package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// SlotRepository слоты в памяти, ошибки совпадают с postgres-репозиторием
type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	created, err := r.CreateBatch(ctx, []*domain.TimeSlot{slot})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch либо все слоты, либо ни одного (UNIQUE stylist_id, date, start_time)
func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	type key struct {
		stylist uuid.UUID
		date    time.Time
		start   types.TimeString
	}

	taken := make(map[key]struct{}, len(r.s.slots)+len(slots))
	for _, existing := range r.s.slots {
		taken[key{existing.StylistID, existing.Date, existing.StartTime}] = struct{}{}
	}

	for _, s := range slots {
		k := key{s.StylistID, domain.DateOnly(s.Date), s.StartTime}
		if _, ok := taken[k]; ok {
			return nil, slotRepo.ErrDuplicateSlot
		}
		taken[k] = struct{}{}
	}

	now := r.s.clock.Now()
	for _, s := range slots {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.Date = domain.DateOnly(s.Date)
		s.CreatedAt = now
		s.UpdatedAt = now
		r.s.slots[s.ID] = *s
	}

	return slots, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	s, ok := r.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &s, nil
}

func (r *SlotRepository) CountByStylistAndDate(ctx context.Context, stylistID uuid.UUID, date time.Time) (int, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	day := domain.DateOnly(date)
	count := 0
	for _, s := range r.s.slots {
		if s.StylistID == stylistID && s.Date.Equal(day) {
			count++
		}
	}
	return count, nil
}

func (r *SlotRepository) ListStartTimes(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]types.TimeString, error) {
	list, err := r.List(ctx, domain.SlotFilter{StylistID: &stylistID, Date: &date})
	if err != nil {
		return nil, err
	}

	starts := make([]types.TimeString, 0, len(list))
	for _, s := range list {
		starts = append(starts, s.StartTime)
	}
	return starts, nil
}

func (r *SlotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	list := make([]*domain.TimeSlot, 0)
	for _, s := range r.s.slots {
		if filter.StylistID != nil && s.StylistID != *filter.StylistID {
			continue
		}
		if filter.Date != nil && !s.Date.Equal(domain.DateOnly(*filter.Date)) {
			continue
		}
		if filter.IsBooked != nil && s.IsBooked != *filter.IsBooked {
			continue
		}
		s := s
		list = append(list, &s)
	}

	sort.Slice(list, func(i, j int) bool {
		return slotLess(list[i], list[j])
	})

	return list, nil
}

func (r *SlotRepository) ListAvailable(ctx context.Context, stylistID uuid.UUID, date time.Time) ([]*domain.TimeSlot, error) {
	booked := false
	return r.List(ctx, domain.SlotFilter{
		StylistID: &stylistID,
		Date:      &date,
		IsBooked:  &booked,
	})
}

// Reserve compare-and-set по is_booked
func (r *SlotRepository) Reserve(ctx context.Context, id uuid.UUID) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	s, ok := r.s.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.IsBooked {
		return slotRepo.ErrSlotAlreadyReserved
	}

	s.IsBooked = true
	s.UpdatedAt = r.s.clock.Now()
	r.s.slots[id] = s
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	s, ok := r.s.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}

	s.IsBooked = false
	s.UpdatedAt = r.s.clock.Now()
	r.s.slots[id] = s
	return nil
}

func (r *SlotRepository) HasAppointments(ctx context.Context, id uuid.UUID) (bool, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	return r.s.slotReferenced(id), nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := r.s.acquire(ctx)
	defer unlock()

	s, ok := r.s.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.IsBooked || r.s.slotReferenced(id) {
		return slotRepo.ErrSlotInUse
	}

	delete(r.s.slots, id)
	return nil
}

func (s *Store) slotReferenced(id uuid.UUID) bool {
	for _, a := range s.appointments {
		if a.TimeSlotID == id {
			return true
		}
	}
	return false
}

func slotLess(a, b *domain.TimeSlot) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.StartTime.IsBefore(b.StartTime)
}
