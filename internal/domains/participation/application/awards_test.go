package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

func TestAssignAndClearSpecialAward(t *testing.T) {
	f := newFixture(t)
	event := f.event(t, 40, 0)
	_, err := f.svc.SeedAwards(f.ctx, types.SeedAwardsInput{EventID: event.ID, Awards: []domain.AwardSeed{
		{Name: "Best Coat", Special: true},
		{Name: "Best Coat", Special: true},
		{Name: "Friendliest", Special: true},
	}})
	require.NoError(t, err)
	rex, luna, stray := f.pet(t, 1, "Rex"), f.pet(t, 2, "Luna"), f.pet(t, 3, "Stray")
	for owner, pet := range map[int64]int64{1: rex, 2: luna} {
		_, err := f.svc.Register(f.ctx, types.RegisterInput{OwnerID: owner, PetID: pet, EventID: event.ID})
		require.NoError(t, err)
	}

	first, err := f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: event.ID, AwardName: "best coat", PetID: rex})
	require.NoError(t, err)
	require.True(t, first.HeldBy(rex))
	require.Equal(t, "Special award", first.Description)
	require.Equal(t, catalogdomain.DateOf(baseToday), *first.Date)

	second, err := f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: event.ID, AwardName: "Best Coat", PetID: luna, Description: "Shiniest"})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	_, err = f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: event.ID, AwardName: "Best Coat", PetID: luna})
	require.ErrorIs(t, err, domain.ErrAwardNotFound)
	_, err = f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: event.ID, AwardName: "Friendliest", PetID: stray})
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
	_, err = f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: event.ID, AwardName: "Friendliest", PetID: rex})
	require.NoError(t, err)

	cleared, err := f.svc.ClearAward(f.ctx, types.ClearAwardInput{EventID: event.ID, AwardName: "Friendliest", PetID: rex})
	require.NoError(t, err)
	require.Equal(t, 1, cleared)
	cleared, err = f.svc.ClearAward(f.ctx, types.ClearAwardInput{EventID: event.ID, PetID: rex})
	require.NoError(t, err)
	require.Equal(t, 1, cleared)

	awards, err := f.svc.EventAwards(f.ctx, event.ID)
	require.NoError(t, err)
	held := 0
	for _, award := range awards {
		require.False(t, award.HeldBy(rex))
		if award.Assigned() {
			held++
		}
	}
	require.Equal(t, 1, held)
}

func TestAwards_StyleChecks(t *testing.T) {
	f := newFixture(t)
	placement := f.event(t, 40, 0)
	_, err := f.svc.SeedAwards(f.ctx, types.SeedAwardsInput{EventID: placement.ID, Awards: []domain.AwardSeed{{Name: "Champion"}}})
	require.NoError(t, err)

	_, err = f.svc.SeedAwards(f.ctx, types.SeedAwardsInput{EventID: placement.ID, Awards: []domain.AwardSeed{{Name: "Best Coat", Special: true}}})
	require.ErrorIs(t, err, domain.ErrMixedAwardKinds)

	_, err = f.svc.AssignAward(f.ctx, types.AssignAwardInput{EventID: placement.ID, AwardName: "Champion", PetID: 1})
	require.ErrorIs(t, err, domain.ErrNotSpecialEvent)
	_, err = f.svc.ClearAward(f.ctx, types.ClearAwardInput{EventID: placement.ID, PetID: 1})
	require.ErrorIs(t, err, domain.ErrNotSpecialEvent)

	_, err = f.svc.SeedAwards(f.ctx, types.SeedAwardsInput{EventID: placement.ID, Awards: []domain.AwardSeed{{Name: " "}}})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.SeedAwards(f.ctx, types.SeedAwardsInput{EventID: 999, Awards: []domain.AwardSeed{{Name: "X"}}})
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestReleasePet_RemovesEntriesAndAwards(t *testing.T) {
	f := newFixture(t)
	ev := setupPlacementEvent(t, f, "A", "B")
	for name, score := range map[string]float64{"A": 9, "B": 8} {
		_, err := f.svc.RecordScore(f.ctx, types.RecordScoreInput{EntryID: ev.entries[name], EventID: ev.eventID, Score: score})
		require.NoError(t, err)
	}

	removed := false
	require.NoError(t, f.svc.ReleasePet(f.ctx, ev.pets["A"], func(context.Context) error {
		removed = true
		return nil
	}))
	require.True(t, removed)

	entries, err := f.svc.EventEntries(f.ctx, ev.eventID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	awards, err := f.svc.EventAwards(f.ctx, ev.eventID)
	require.NoError(t, err)
	require.Equal(t, ev.pets["B"], holder(t, awards, "1st Place"))
	require.Zero(t, holder(t, awards, "2nd Place"))
	require.Len(t, f.logs(t, domain.LogFilter{EventID: ev.eventID}), 2)
}

func TestReleasePet_RollsBackWhenRemovalFails(t *testing.T) {
	f := newFixture(t)
	ev := setupPlacementEvent(t, f, "A", "B")
	for name, score := range map[string]float64{"A": 9, "B": 8} {
		_, err := f.svc.RecordScore(f.ctx, types.RecordScoreInput{EntryID: ev.entries[name], EventID: ev.eventID, Score: score})
		require.NoError(t, err)
	}

	err := f.svc.ReleasePet(f.ctx, ev.pets["A"], func(context.Context) error {
		return errors.New("db down")
	})
	require.ErrorContains(t, err, "db down")

	entries, err := f.svc.EventEntries(f.ctx, ev.eventID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	awards, err := f.svc.EventAwards(f.ctx, ev.eventID)
	require.NoError(t, err)
	require.Equal(t, ev.pets["A"], holder(t, awards, "1st Place"))
	require.Equal(t, ev.pets["B"], holder(t, awards, "2nd Place"))
}
