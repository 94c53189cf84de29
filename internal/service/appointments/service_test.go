package appointments

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	day1 = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memory.Store
	svc      *Service
	customer domain.User
	stylist  domain.Stylist
	service  domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New(clock.NewManual(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)))
	f := &fixture{store: store}
	f.customer = store.AddUser(domain.User{FullName: "Anna", Email: "anna@example.com", Role: domain.RoleCustomer, Status: domain.UserActive})
	stylistUser := store.AddUser(domain.User{FullName: "Maria", Role: domain.RoleStylist, Status: domain.UserActive})
	f.stylist = store.AddStylist(domain.Stylist{UserID: stylistUser.ID, Specialization: "color"})
	f.service = store.AddService(domain.Service{StylistID: f.stylist.ID, Name: "Haircut", Price: 25, DurationMinutes: 45})
	f.svc = NewService(store.Appointments(), store.Catalog(), store, logger.NewNop())
	return f
}

// book создает слот и запись напрямую через хранилище
func (f *fixture) book(t *testing.T, date time.Time, start types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	ctx := context.Background()

	end, err := start.AddMinutes(60)
	require.NoError(t, err)

	slot, err := f.store.Slots().Create(ctx, &domain.TimeSlot{StylistID: f.stylist.ID, Date: date, StartTime: start, EndTime: end})
	require.NoError(t, err)
	require.NoError(t, f.store.Slots().Reserve(ctx, slot.ID))

	a, err := f.store.Appointments().Create(ctx, &domain.Appointment{
		CustomerID: f.customer.ID,
		StylistID:  f.stylist.ID,
		ServiceID:  f.service.ID,
		TimeSlotID: slot.ID,
		Status:     status,
	})
	require.NoError(t, err)
	return a
}

func startTimes(list *models.AppointmentListResponse) []string {
	out := make([]string, 0, len(list.Appointments))
	for _, a := range list.Appointments {
		out = append(out, a.TimeSlot.Date+" "+a.TimeSlot.StartTime)
	}
	return out
}

func TestGetMyAppointments_Ordering(t *testing.T) {
	f := newFixture(t)
	f.book(t, day1, "10:00", domain.StatusPending)
	f.book(t, day2, "09:00", domain.StatusConfirmed)
	f.book(t, day1, "14:00", domain.StatusPending)

	got, err := f.svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{CustomerID: f.customer.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-21 09:00", "2026-10-20 14:00", "2026-10-20 10:00"}, startTimes(got))

	got, err = f.svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		CustomerID: f.customer.ID,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-21 09:00"}, startTimes(got))

	_, err = f.svc.GetMyAppointments(context.Background(), &models.GetMyAppointmentsRequest{
		CustomerID: f.customer.ID,
		Status:     ptr.Ptr("LOST"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetStylistAppointments(t *testing.T) {
	f := newFixture(t)
	f.book(t, day2, "09:00", domain.StatusPending)
	f.book(t, day1, "14:00", domain.StatusPending)
	f.book(t, day1, "10:00", domain.StatusPending)

	got, err := f.svc.GetStylistAppointments(context.Background(), &models.GetStylistAppointmentsRequest{StylistID: f.stylist.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-20 10:00", "2026-10-20 14:00", "2026-10-21 09:00"}, startTimes(got))

	got, err = f.svc.GetStylistAppointments(context.Background(), &models.GetStylistAppointmentsRequest{
		StylistID: f.stylist.ID,
		Date:      ptr.Ptr(day1.Add(13 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Len(t, got.Appointments, 2)

	_, err = f.svc.GetStylistAppointments(context.Background(), &models.GetStylistAppointmentsRequest{StylistID: uuid.New()})
	assert.ErrorIs(t, err, ErrStylistNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAllAppointments_Filters(t *testing.T) {
	f := newFixture(t)
	f.book(t, day1, "10:00", domain.StatusPending)
	f.book(t, day1, "11:00", domain.StatusCompleted)

	other := f.store.AddUser(domain.User{FullName: "Olga", Role: domain.RoleCustomer, Status: domain.UserActive})

	got, err := f.svc.GetAllAppointments(context.Background(), &models.GetAllAppointmentsRequest{})
	require.NoError(t, err)
	assert.Len(t, got.Appointments, 2)

	got, err = f.svc.GetAllAppointments(context.Background(), &models.GetAllAppointmentsRequest{Status: ptr.Ptr("COMPLETED")})
	require.NoError(t, err)
	require.Len(t, got.Appointments, 1)
	assert.Equal(t, "11:00", got.Appointments[0].TimeSlot.StartTime)

	got, err = f.svc.GetAllAppointments(context.Background(), &models.GetAllAppointmentsRequest{CustomerID: &other.ID})
	require.NoError(t, err)
	assert.Empty(t, got.Appointments)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, day1, "10:00", domain.StatusPending)

	got, err := f.svc.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Anna", got.Customer.FullName)
	assert.Equal(t, "Maria", got.Stylist.FullName)
	assert.Equal(t, "2026-10-20", got.TimeSlot.Date)

	_, err = f.svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, day1, "10:00", domain.StatusPending)

	got, err := f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", got.Status)

	got, err = f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", got.Status)

	_, err = f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), &models.UpdateStatusRequest{Status: "CONFIRMED"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateStatus_CancelledKeepsSlotBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, day1, "10:00", domain.StatusConfirmed)

	got, err := f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{
		Status:             "CANCELLED",
		CancellationReason: ptr.Ptr("no show"),
	})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", got.Status)
	assert.Equal(t, "no show", *got.CancellationReason)

	slot, err := f.store.Slots().GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	assert.True(t, slot.IsBooked)
}

type warnRecorder struct {
	mu    sync.Mutex
	warns []string
}

func (r *warnRecorder) Info(string, ...interface{})  {}
func (r *warnRecorder) Error(string, ...interface{}) {}

func (r *warnRecorder) Warn(format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, fmt.Sprintf(format, v...))
}

func (r *warnRecorder) contains(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.warns {
		if strings.Contains(w, sub) {
			return true
		}
	}
	return false
}

func TestUpdateStatus_ReactivationLogsWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec := &warnRecorder{}
	f.svc = NewService(f.store.Appointments(), f.store.Catalog(), f.store, rec)

	a := f.book(t, day1, "10:00", domain.StatusCancelled)
	require.NoError(t, f.store.Slots().Release(ctx, a.TimeSlotID))

	got, err := f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", got.Status)
	assert.True(t, rec.contains("reactivated from CANCELLED to CONFIRMED"))

	slot, err := f.store.Slots().GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)

	rec2 := &warnRecorder{}
	f.svc = NewService(f.store.Appointments(), f.store.Catalog(), f.store, rec2)
	_, err = f.svc.UpdateStatus(ctx, a.ID, &models.UpdateStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)
	assert.False(t, rec2.contains("reactivated"))
}
