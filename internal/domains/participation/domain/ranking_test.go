package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func scored(id, petID int64, result float64) *Entry {
	entry := NewEntry(1, petID, 1)
	entry.ID = id
	entry.Score(result)
	return entry
}

func placementAwards() []*Award {
	return []*Award{
		{ID: 1, EventID: 1, Name: "1st Place"},
		{ID: 2, EventID: 1, Name: "Runner Up"},
		{ID: 3, EventID: 1, Name: "Best Groomed"},
	}
}

func TestRank_OrdersByResultThenEntryID(t *testing.T) {
	unscored := NewEntry(1, 40, 1)
	unscored.ID = 4
	entries := []*Entry{scored(3, 30, 9.5), scored(1, 10, 9.5), scored(2, 20, 9.8), unscored}

	ranking := Rank(entries)

	require.Equal(t, []Placement{
		{Rank: 1, EntryID: 2, PetID: 20, Result: 9.8},
		{Rank: 2, EntryID: 1, PetID: 10, Result: 9.5},
		{Rank: 3, EntryID: 3, PetID: 30, Result: 9.5},
	}, ranking)
}

func TestRebind_FollowsRankingChanges(t *testing.T) {
	awards := placementAwards()
	entries := []*Entry{scored(1, 10, 9.8), scored(2, 20, 9.5), scored(3, 30, 9.1)}

	changed := Rebind(awards, Rank(entries))
	require.Len(t, changed, 2)
	require.True(t, awards[0].HeldBy(10))
	require.True(t, awards[1].HeldBy(20))
	require.False(t, awards[2].Assigned())

	entries[2].Score(9.9)
	changed = Rebind(awards, Rank(entries))
	require.Len(t, changed, 2)
	require.True(t, awards[0].HeldBy(30))
	require.True(t, awards[1].HeldBy(10))

	require.Empty(t, Rebind(awards, Rank(entries)))
}

func TestRebind_ClearsRankWithoutHolder(t *testing.T) {
	awards := placementAwards()
	pet := int64(99)
	awards[1].PetID = &pet

	Rebind(awards, Rank([]*Entry{scored(1, 10, 7)}))

	require.True(t, awards[0].HeldBy(10))
	require.False(t, awards[1].Assigned())
}

func TestPlacementRank_Patterns(t *testing.T) {
	require.Equal(t, 1, PlacementRank("Champion"))
	require.Equal(t, 1, PlacementRank("1ST PLACE"))
	require.Equal(t, 2, PlacementRank("2nd Place"))
	require.Equal(t, 2, PlacementRank("runner up"))
	require.Equal(t, 2, PlacementRank("1st Runner Up"))
	require.Zero(t, PlacementRank("Best in Show"))
}

func TestRank_Properties(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(r, "entries")
		entries := make([]*Entry, 0, n)
		for i := 0; i < n; i++ {
			entry := NewEntry(1, int64(100+i), 1)
			entry.ID = int64(i + 1)
			if rapid.Bool().Draw(r, "scored") {
				entry.Score(float64(rapid.IntRange(0, 20).Draw(r, "result")) / 2)
			}
			entries = append(entries, entry)
		}

		ranking := Rank(entries)
		for i := 1; i < len(ranking); i++ {
			prev, cur := ranking[i-1], ranking[i]
			require.Equal(r, i+1, cur.Rank)
			require.GreaterOrEqual(r, prev.Result, cur.Result)
			if prev.Result == cur.Result {
				require.Less(r, prev.EntryID, cur.EntryID)
			}
		}

		awards := placementAwards()
		Rebind(awards, ranking)
		require.Empty(r, Rebind(awards, ranking))
	})
}
