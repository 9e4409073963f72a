package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

func TestStore_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(tx ports.Store) error {
		reg := domain.NewRegistration(1, 1, time.Now(), 100, time.Now())
		require.NoError(t, tx.CreateRegistration(ctx, reg))
		require.NoError(t, tx.CreateEntry(ctx, domain.NewEntry(reg.ID, 5, 1)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.RunInTx(ctx, func(tx ports.Store) error {
		count, err := tx.CountPaidPets(ctx, 1)
		require.NoError(t, err)
		require.Zero(t, count)
		_, err = tx.GetRegistration(ctx, 1, false)
		require.ErrorIs(t, err, domain.ErrRegistrationNotFound)
		return nil
	}))
}

func TestStore_EntryUniquenessAndPaidCounts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.RunInTx(ctx, func(tx ports.Store) error {
		reg := domain.NewRegistration(1, 1, time.Now(), 100, time.Now())
		require.NoError(t, tx.CreateRegistration(ctx, reg))
		require.NoError(t, tx.CreateEntry(ctx, domain.NewEntry(reg.ID, 5, 1)))
		require.ErrorIs(t, tx.CreateEntry(ctx, domain.NewEntry(reg.ID, 5, 1)), domain.ErrAlreadyRegistered)
		require.NoError(t, tx.CreateEntry(ctx, domain.NewEntry(reg.ID, 6, 1)))

		other := domain.NewRegistration(2, 1, time.Now(), 100, time.Now())
		require.NoError(t, tx.CreateRegistration(ctx, other))
		require.NoError(t, tx.CreateEntry(ctx, domain.NewEntry(other.ID, 7, 1)))
		return nil
	}))

	require.NoError(t, store.RunInTx(ctx, func(tx ports.Store) error {
		total, err := tx.CountPaidPets(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, 3, total)
		owned, err := tx.CountOwnerPaidPets(ctx, 1, 1)
		require.NoError(t, err)
		require.Equal(t, 2, owned)

		entry, err := tx.FindPaidEntry(ctx, 6, 1)
		require.NoError(t, err)
		require.NotNil(t, entry)
		missing, err := tx.FindPaidEntry(ctx, 6, 2)
		require.NoError(t, err)
		require.Nil(t, missing)

		removed, err := tx.DeleteEntries(ctx, 1, 1)
		require.NoError(t, err)
		require.Equal(t, 2, removed)
		return nil
	}))
}

func TestStore_ReleasePetReportsTouchedEvents(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.RunInTx(ctx, func(tx ports.Store) error {
		reg := domain.NewRegistration(1, 3, time.Now(), 100, time.Now())
		require.NoError(t, tx.CreateRegistration(ctx, reg))
		require.NoError(t, tx.CreateEntry(ctx, domain.NewEntry(reg.ID, 5, 3)))
		award := &domain.Award{EventID: 9, Special: true, Name: "Best Coat"}
		award.AssignTo(5, "Special award", time.Now())
		return tx.CreateAward(ctx, award)
	}))

	require.NoError(t, store.RunInTx(ctx, func(tx ports.Store) error {
		events, err := tx.ReleasePet(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, []int64{3, 9}, events)
		awards, err := tx.ListAwards(ctx, 9)
		require.NoError(t, err)
		require.False(t, awards[0].Assigned())
		return nil
	}))
}

func TestStore_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewStore().RunInTx(ctx, func(ports.Store) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestIdempotencyStore_Conflicts(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return fixed })

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h", RegistrationID: 1})
	require.NoError(t, err)
	require.Equal(t, fixed, saved.CreatedAt)

	again, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h", RegistrationID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(1), again.RegistrationID)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "other", RegistrationID: 2})
	require.ErrorIs(t, err, domain.ErrIdempotencyConflict)
	require.Equal(t, "h", existing.RequestHash)

	missing, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}
