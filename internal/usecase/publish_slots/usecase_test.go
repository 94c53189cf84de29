package publish_slots

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	testNow  = time.Date(2026, 10, 19, 18, 30, 0, 0, time.UTC)
	today    = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tomorrow = today.AddDate(0, 0, 1)
)

func newUseCase(t *testing.T) (*UseCase, *memory.Store, domain.Stylist) {
	t.Helper()

	clk := clock.NewManual(testNow)
	store := memory.New(clk)
	stylist := store.AddStylist(domain.Stylist{UserID: uuid.New()})

	uc := NewUseCase(
		store.Catalog(),
		store.Slots(),
		store,
		clk,
		domain.DefaultBookingPolicy(),
		metrics.NewWithRegistry(prometheus.NewRegistry(), "test"),
		logger.NewNop(),
	)
	return uc, store, stylist
}

func hourly(from, n int) []domain.SlotTime {
	out := make([]domain.SlotTime, 0, n)
	for h := from; h < from+n; h++ {
		out = append(out, domain.SlotTime{
			StartTime: types.TimeString(fmt.Sprintf("%02d:00", h)),
			EndTime:   types.TimeString(fmt.Sprintf("%02d:00", h+1)),
		})
	}
	return out
}

func countSlots(t *testing.T, store *memory.Store, stylistID uuid.UUID, date time.Time) int {
	t.Helper()
	n, err := store.Slots().CountByStylistAndDate(context.Background(), stylistID, date)
	require.NoError(t, err)
	return n
}

func TestCreateSlot(t *testing.T) {
	uc, store, stylist := newUseCase(t)
	ctx := context.Background()

	// сегодняшняя дата допустима, даже если часть дня уже прошла
	got, err := uc.CreateSlot(ctx, &CreateSlotRequest{
		StylistID: stylist.ID,
		Date:      today.Add(15 * time.Hour),
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, today, got.Date)
	assert.False(t, got.IsBooked)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 1, countSlots(t, store, stylist.ID, today))
}

func TestCreateSlot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func(stylistID uuid.UUID) *CreateSlotRequest
		wantErr error
		kind    error
	}{
		{
			name: "yesterday",
			req: func(id uuid.UUID) *CreateSlotRequest {
				return &CreateSlotRequest{StylistID: id, Date: today.AddDate(0, 0, -1), StartTime: "09:00", EndTime: "10:00"}
			},
			wantErr: ErrPastDate,
			kind:    domain.ErrPastDate,
		},
		{
			name: "start after end",
			req: func(id uuid.UUID) *CreateSlotRequest {
				return &CreateSlotRequest{StylistID: id, Date: tomorrow, StartTime: "11:00", EndTime: "10:00"}
			},
			wantErr: ErrInvalidTimeRange,
			kind:    domain.ErrInvalidInput,
		},
		{
			name: "bad time format",
			req: func(id uuid.UUID) *CreateSlotRequest {
				return &CreateSlotRequest{StylistID: id, Date: tomorrow, StartTime: "9am", EndTime: "10:00"}
			},
			wantErr: ErrInvalidInput,
			kind:    domain.ErrInvalidInput,
		},
		{
			name: "unknown stylist",
			req: func(uuid.UUID) *CreateSlotRequest {
				return &CreateSlotRequest{StylistID: uuid.New(), Date: tomorrow, StartTime: "09:00", EndTime: "10:00"}
			},
			wantErr: ErrStylistNotFound,
			kind:    domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, stylist := newUseCase(t)
			_, err := uc.CreateSlot(context.Background(), tt.req(stylist.ID))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestCreateSlot_Duplicate(t *testing.T) {
	uc, _, stylist := newUseCase(t)
	ctx := context.Background()
	req := &CreateSlotRequest{StylistID: stylist.ID, Date: tomorrow, StartTime: "09:00", EndTime: "10:00"}

	_, err := uc.CreateSlot(ctx, req)
	require.NoError(t, err)

	_, err = uc.CreateSlot(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateSlot_EquivalentSpellingsAreDuplicates(t *testing.T) {
	uc, store, stylist := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateSlot(ctx, &CreateSlotRequest{
		StylistID: stylist.ID, Date: tomorrow, StartTime: "9:00", EndTime: "10:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), created.StartTime)
	assert.Equal(t, types.TimeString("10:00"), created.EndTime)

	for _, start := range []types.TimeString{"09:00", "9:00", "09:00:00"} {
		_, err = uc.CreateSlot(ctx, &CreateSlotRequest{
			StylistID: stylist.ID, Date: tomorrow, StartTime: start, EndTime: "10:00",
		})
		assert.ErrorIs(t, err, ErrDuplicateSlot, "start %s", start)
	}
	assert.Equal(t, 1, countSlots(t, store, stylist.ID, tomorrow))
}

func TestCreateSlot_Capacity(t *testing.T) {
	uc, store, stylist := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateSlotsBulk(ctx, &CreateSlotsBulkRequest{StylistID: stylist.ID, Date: tomorrow, Slots: hourly(9, 8)})
	require.NoError(t, err)

	_, err = uc.CreateSlot(ctx, &CreateSlotRequest{StylistID: stylist.ID, Date: tomorrow, StartTime: "18:00", EndTime: "19:00"})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 0, capErr.Remaining())
	assert.Equal(t, 8, countSlots(t, store, stylist.ID, tomorrow))

	// лимит считается на день: другой день свободен
	_, err = uc.CreateSlot(ctx, &CreateSlotRequest{StylistID: stylist.ID, Date: tomorrow.AddDate(0, 0, 1), StartTime: "18:00", EndTime: "19:00"})
	assert.NoError(t, err)
}

func TestCreateSlotsBulk_AllOrNothing(t *testing.T) {
	uc, store, stylist := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateSlotsBulk(ctx, &CreateSlotsBulkRequest{StylistID: stylist.ID, Date: tomorrow, Slots: hourly(9, 5)})
	require.NoError(t, err)

	_, err = uc.CreateSlotsBulk(ctx, &CreateSlotsBulkRequest{StylistID: stylist.ID, Date: tomorrow, Slots: hourly(14, 4)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "can only add 3 more slot(s)")

	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 3, capErr.Remaining())
	assert.Equal(t, 5, countSlots(t, store, stylist.ID, tomorrow))

	// дубликат с уже существующим слотом отклоняет весь пакет
	batch := append(hourly(14, 2), domain.SlotTime{StartTime: "09:00", EndTime: "09:30"})
	_, err = uc.CreateSlotsBulk(ctx, &CreateSlotsBulkRequest{StylistID: stylist.ID, Date: tomorrow, Slots: batch})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.Equal(t, 5, countSlots(t, store, stylist.ID, tomorrow))

	created, err := uc.CreateSlotsBulk(ctx, &CreateSlotsBulkRequest{StylistID: stylist.ID, Date: tomorrow, Slots: hourly(14, 3)})
	require.NoError(t, err)
	assert.Len(t, created, 3)
	assert.Equal(t, 8, countSlots(t, store, stylist.ID, tomorrow))
}

func TestCreateSlotsBulk_Validation(t *testing.T) {
	tests := []struct {
		name    string
		slots   []domain.SlotTime
		wantErr error
	}{
		{name: "empty", slots: nil, wantErr: ErrInvalidInput},
		{name: "more than daily capacity", slots: hourly(8, 9), wantErr: ErrInvalidInput},
		{
			name:    "repeated start in batch",
			slots:   []domain.SlotTime{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "09:00", EndTime: "09:30"}},
			wantErr: ErrDuplicateSlot,
		},
		{
			name:    "repeated start in different spelling",
			slots:   []domain.SlotTime{{StartTime: "9:00", EndTime: "10:00"}, {StartTime: "09:00:00", EndTime: "09:30"}},
			wantErr: ErrDuplicateSlot,
		},
		{
			name:    "inverted range",
			slots:   []domain.SlotTime{{StartTime: "10:00", EndTime: "10:00"}},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, stylist := newUseCase(t)
			_, err := uc.CreateSlotsBulk(context.Background(), &CreateSlotsBulkRequest{
				StylistID: stylist.ID,
				Date:      tomorrow,
				Slots:     tt.slots,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, countSlots(t, store, stylist.ID, tomorrow))
		})
	}
}

func TestCreateSlot_ConcurrentPublishersRespectCapacity(t *testing.T) {
	uc, store, stylist := newUseCase(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for h := 6; h < 22; h++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			_, _ = uc.CreateSlot(ctx, &CreateSlotRequest{
				StylistID: stylist.ID,
				Date:      tomorrow,
				StartTime: types.TimeString(fmt.Sprintf("%02d:00", h)),
				EndTime:   types.TimeString(fmt.Sprintf("%02d:30", h)),
			})
		}(h)
	}
	wg.Wait()

	assert.Equal(t, domain.DefaultDailySlotCapacity, countSlots(t, store, stylist.ID, tomorrow))
}
