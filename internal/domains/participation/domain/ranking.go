package domain

import "sort"

// Placement is one row of an event ranking.
type Placement struct {
	Rank    int
	EntryID int64
	PetID   int64
	Result  float64
}

// Rank orders scored entries by result, highest first. Equal results go to the lower entry id.
// Entries without a result are left out.
func Rank(entries []*Entry) []Placement {
	scored := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Result != nil {
			scored = append(scored, entry)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if *scored[i].Result != *scored[j].Result {
			return *scored[i].Result > *scored[j].Result
		}
		return scored[i].ID < scored[j].ID
	})
	ranking := make([]Placement, len(scored))
	for i, entry := range scored {
		ranking[i] = Placement{Rank: i + 1, EntryID: entry.ID, PetID: entry.PetID, Result: *entry.Result}
	}
	return ranking
}

// Rebind points every rank-matched placement award at the pet holding that rank.
// It returns the awards whose holder changed. Awards of a rank nobody holds are cleared.
func Rebind(awards []*Award, ranking []Placement) []*Award {
	var changed []*Award
	for _, award := range awards {
		if award.Special {
			continue
		}
		rank := PlacementRank(award.Name)
		if rank == 0 {
			continue
		}
		var holder *int64
		if rank <= len(ranking) {
			pet := ranking[rank-1].PetID
			holder = &pet
		}
		if samePet(award.PetID, holder) {
			continue
		}
		award.PetID = holder
		changed = append(changed, award)
	}
	return changed
}

func samePet(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
