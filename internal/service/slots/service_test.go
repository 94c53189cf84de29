package slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonService/internal/service/slots/models"
	"github.com/m04kA/SMC-SalonService/internal/usecase/cancel_appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	testNow  = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	slotDate = time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memory.Store
	svc      *Service
	publish  *publish_slots.UseCase
	book     *create_appointment.UseCase
	cancel   *cancel_appointment.UseCase
	customer domain.User
	stylist  domain.Stylist
	service  domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewManual(testNow)
	store := memory.New(clk)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	log := logger.NewNop()
	policy := domain.DefaultBookingPolicy()

	f := &fixture{store: store}
	f.customer = store.AddUser(domain.User{FullName: "Anna", Role: domain.RoleCustomer, Status: domain.UserActive})
	f.stylist = store.AddStylist(domain.Stylist{UserID: uuid.New()})
	f.service = store.AddService(domain.Service{StylistID: f.stylist.ID, Name: "Haircut"})

	f.svc = NewService(store.Slots(), store, log)
	f.publish = publish_slots.NewUseCase(store.Catalog(), store.Slots(), store, clk, policy, m, log)
	f.book = create_appointment.NewUseCase(store.Users(), store.Catalog(), store.Slots(), store.Appointments(), store, clk, m, log)
	f.cancel = cancel_appointment.NewUseCase(store.Appointments(), store.Slots(), store, clk, policy, m, log)
	return f
}

func (f *fixture) createSlot(t *testing.T, start, end string) *domain.TimeSlot {
	t.Helper()
	slot, err := f.publish.CreateSlot(context.Background(), &publish_slots.CreateSlotRequest{
		StylistID: f.stylist.ID,
		Date:      slotDate,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	})
	require.NoError(t, err)
	return slot
}

func (f *fixture) available(t *testing.T) []string {
	t.Helper()
	got, err := f.svc.GetAvailableSlots(context.Background(), f.stylist.ID, slotDate.Add(23*time.Hour+59*time.Minute))
	require.NoError(t, err)

	starts := make([]string, 0, len(got.Slots))
	for _, s := range got.Slots {
		starts = append(starts, s.StartTime)
	}
	return starts
}

func TestAvailability_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createSlot(t, "15:00", "16:00")
	slot := f.createSlot(t, "09:00", "10:00")
	assert.Equal(t, []string{"09:00", "15:00"}, f.available(t))

	booked, err := f.book.Execute(ctx, &create_appointment.Request{
		CustomerID: f.customer.ID,
		StylistID:  f.stylist.ID,
		ServiceID:  f.service.ID,
		TimeSlotID: slot.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"15:00"}, f.available(t))

	_, err = f.cancel.Execute(ctx, &cancel_appointment.Request{
		AppointmentID: booked.ID,
		ActorID:       f.customer.ID,
		ActorRole:     domain.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "15:00"}, f.available(t))
}

func TestGetSlots_Filter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createSlot(t, "12:00", "13:00")
	reserved := f.createSlot(t, "10:00", "11:00")
	require.NoError(t, f.store.Slots().Reserve(ctx, reserved.ID))

	all, err := f.svc.GetSlots(ctx, &models.GetSlotsRequest{StylistID: &f.stylist.ID})
	require.NoError(t, err)
	require.Len(t, all.Slots, 2)
	assert.Equal(t, "10:00", all.Slots[0].StartTime)
	assert.Equal(t, "2026-10-22", all.Slots[0].Date)

	booked, err := f.svc.GetSlots(ctx, &models.GetSlotsRequest{IsBooked: ptr.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, booked.Slots, 1)
	assert.Equal(t, reserved.ID, booked.Slots[0].ID)

	other, err := f.svc.GetSlots(ctx, &models.GetSlotsRequest{Date: ptr.Ptr(slotDate.AddDate(0, 0, 1))})
	require.NoError(t, err)
	assert.Empty(t, other.Slots)
}

func TestDeleteSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	free := f.createSlot(t, "09:00", "10:00")
	require.NoError(t, f.svc.DeleteSlot(ctx, free.ID))
	assert.ErrorIs(t, f.svc.DeleteSlot(ctx, free.ID), ErrSlotNotFound)

	slot := f.createSlot(t, "11:00", "12:00")
	booked, err := f.book.Execute(ctx, &create_appointment.Request{
		CustomerID: f.customer.ID,
		StylistID:  f.stylist.ID,
		ServiceID:  f.service.ID,
		TimeSlotID: slot.ID,
	})
	require.NoError(t, err)

	err = f.svc.DeleteSlot(ctx, slot.ID)
	assert.ErrorIs(t, err, ErrSlotInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// после отмены слот свободен, но на него всё ещё ссылается запись
	_, err = f.cancel.Execute(ctx, &cancel_appointment.Request{
		AppointmentID: booked.ID,
		ActorID:       uuid.New(),
		ActorRole:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.DeleteSlot(ctx, slot.ID), ErrSlotInUse)
}

func TestGetAvailableSlots_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetAvailableSlots(context.Background(), uuid.Nil, slotDate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
