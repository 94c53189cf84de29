// Package memory хранилище в памяти процесса с теми же контрактами,
// что и postgres-репозитории. Единица работы (Do*) держит мьютекс
// хранилища на всё время выполнения и откатывает снимок состояния при ошибке.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
)

type txKey struct{}

// Store хранилище в памяти
type Store struct {
	mu    sync.Mutex
	clock clock.Clock

	users        map[uuid.UUID]domain.User
	stylists     map[uuid.UUID]domain.Stylist
	services     map[uuid.UUID]domain.Service
	slots        map[uuid.UUID]domain.TimeSlot
	appointments map[uuid.UUID]domain.Appointment
}

type state struct {
	users        map[uuid.UUID]domain.User
	stylists     map[uuid.UUID]domain.Stylist
	services     map[uuid.UUID]domain.Service
	slots        map[uuid.UUID]domain.TimeSlot
	appointments map[uuid.UUID]domain.Appointment
}

// New создает пустое хранилище. clk задаёт created_at/updated_at
func New(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Store{
		clock:        clk,
		users:        make(map[uuid.UUID]domain.User),
		stylists:     make(map[uuid.UUID]domain.Stylist),
		services:     make(map[uuid.UUID]domain.Service),
		slots:        make(map[uuid.UUID]domain.TimeSlot),
		appointments: make(map[uuid.UUID]domain.Appointment),
	}
}

// Do выполняет fn как единицу работы: всё или ничего
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}

	committed = true
	return nil
}

// DoSerializable единица работы уже сериализована мьютексом хранилища
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// DoReadOnly выполняет fn под мьютексом хранилища
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{s: s}
}

// Appointments репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

// Catalog репозиторий каталога
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{s: s}
}

// Users репозиторий пользователей
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// AddUser добавляет пользователя (сидирование)
func (s *Store) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return u
}

// AddStylist добавляет стилиста (сидирование)
func (s *Store) AddStylist(st domain.Stylist) domain.Stylist {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = s.clock.Now()
	}
	s.stylists[st.ID] = st
	return st
}

// AddService добавляет услугу (сидирование)
func (s *Store) AddService(sv domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv.ID == uuid.Nil {
		sv.ID = uuid.New()
	}
	s.services[sv.ID] = sv
	return sv
}

// acquire берёт мьютекс, если вызов не внутри единицы работы этого хранилища
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

func (s *Store) snapshot() state {
	return state{
		users:        cloneMap(s.users),
		stylists:     cloneMap(s.stylists),
		services:     cloneMap(s.services),
		slots:        cloneMap(s.slots),
		appointments: cloneMap(s.appointments),
	}
}

func (s *Store) restore(st state) {
	s.users = st.users
	s.stylists = st.stylists
	s.services = st.services
	s.slots = st.slots
	s.appointments = st.appointments
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
