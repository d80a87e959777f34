package fakestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func TestTxManager_RollsBackOnError(t *testing.T) {
	store := New()
	store.AddSlots(1, monday, types.MustTimeOfDay(9, 0), types.MustTimeOfDay(10, 0))
	window := domain.Window{Start: types.MustTimeOfDay(9, 0), End: types.MustTimeOfDay(10, 0)}

	err := store.TxManager().DoSerializable(context.Background(), func(ctx context.Context) error {
		_, err := store.Slots().Occupy(ctx, 1, monday, window)
		require.NoError(t, err)
		return errors.New("boom")
	})

	require.Error(t, err)
	for _, sl := range store.SlotsOf(1, monday) {
		assert.True(t, sl.Available, "slot %s must be released by rollback", sl.StartTime)
	}
}

func TestSlots_OccupyRequiresStartSlot(t *testing.T) {
	store := New()
	store.AddSlots(1, monday, types.MustTimeOfDay(10, 0))

	_, err := store.Slots().Occupy(context.Background(), 1, monday,
		domain.Window{Start: types.MustTimeOfDay(9, 0), End: types.MustTimeOfDay(11, 0)})

	assert.ErrorIs(t, err, slotRepo.ErrSlotNotAvailable)
}
