package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
)

var seedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func TestStore_DoRollsBackOnError(t *testing.T) {
	store := New(clock.NewManual(seedNow))
	demo := SeedDemo(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Do(ctx, func(ctx context.Context) error {
		_, err := store.Slots().Create(ctx, &domain.TimeSlot{
			StylistID: demo.Stylist.ID,
			Date:      seedNow,
			StartTime: "10:00",
			EndTime:   "11:00",
		})
		require.NoError(t, err)
		require.NoError(t, store.Users().UpdateStatus(ctx, demo.Customer.ID, domain.UserBlocked, nil))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := store.Slots().CountByStylistAndDate(ctx, demo.Stylist.ID, seedNow)
	require.NoError(t, err)
	assert.Zero(t, n)

	customer, err := store.Users().GetByID(ctx, demo.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserActive, customer.Status)
}

func TestStore_NestedDoJoinsOuterUnit(t *testing.T) {
	store := New(clock.NewManual(seedNow))
	demo := SeedDemo(store)
	ctx := context.Background()

	err := store.Do(ctx, func(ctx context.Context) error {
		return store.DoSerializable(ctx, func(ctx context.Context) error {
			_, err := store.Slots().Create(ctx, &domain.TimeSlot{
				StylistID: demo.Stylist.ID,
				Date:      seedNow,
				StartTime: "12:00",
				EndTime:   "13:00",
			})
			return err
		})
	})
	require.NoError(t, err)

	list, err := store.Slots().List(ctx, domain.SlotFilter{StylistID: &demo.Stylist.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, seedNow, list[0].CreatedAt)
}

func TestStore_ReserveIsCompareAndSet(t *testing.T) {
	store := New(clock.NewManual(seedNow))
	demo := SeedDemo(store)
	ctx := context.Background()

	slot, err := store.Slots().Create(ctx, &domain.TimeSlot{
		StylistID: demo.Stylist.ID,
		Date:      seedNow,
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)

	require.NoError(t, store.Slots().Reserve(ctx, slot.ID))
	assert.ErrorIs(t, store.Slots().Reserve(ctx, slot.ID), slotRepo.ErrSlotAlreadyReserved)

	require.NoError(t, store.Slots().Release(ctx, slot.ID))
	require.NoError(t, store.Slots().Reserve(ctx, slot.ID))
}

func TestSeedDemo(t *testing.T) {
	store := New(clock.NewManual(seedNow))
	demo := SeedDemo(store)
	ctx := context.Background()

	stylist, err := store.Catalog().GetStylistByID(ctx, demo.Stylist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo Stylist", stylist.FullName)

	for _, sv := range demo.Services {
		got, err := store.Catalog().GetServiceByID(ctx, sv.ID)
		require.NoError(t, err)
		assert.True(t, got.IsOfferedBy(demo.Stylist.ID))
	}

	customer, err := store.Users().GetByID(ctx, demo.Customer.ID)
	require.NoError(t, err)
	assert.True(t, customer.CanBook(seedNow))
}
