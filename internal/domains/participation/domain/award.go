package domain

import (
	"strings"
	"time"
)

// Award is a placement or special prize of an event. A nil PetID means unassigned.
type Award struct {
	ID          int64
	EventID     int64
	PetID       *int64
	Special     bool
	Name        string
	Description string
	Date        *time.Time
}

// Assigned reports whether a pet currently holds the award.
func (a *Award) Assigned() bool {
	return a.PetID != nil
}

// AssignTo binds the award to a pet.
func (a *Award) AssignTo(petID int64, description string, day time.Time) {
	pet := petID
	a.PetID = &pet
	a.Description = description
	a.Date = &day
}

// Clear unbinds the award.
func (a *Award) Clear() {
	a.PetID = nil
}

// HeldBy reports whether the given pet holds the award.
func (a *Award) HeldBy(petID int64) bool {
	return a.PetID != nil && *a.PetID == petID
}

// Clone returns a deep copy.
func (a *Award) Clone() *Award {
	if a == nil {
		return nil
	}
	c := *a
	if a.PetID != nil {
		v := *a.PetID
		c.PetID = &v
	}
	if a.Date != nil {
		v := *a.Date
		c.Date = &v
	}
	return &c
}

// AwardSeed describes an award row created at event setup.
type AwardSeed struct {
	Name        string
	Description string
	Special     bool
}

// AwardStyle classifies an event by the award rows seeded for it.
type AwardStyle int

const (
	AwardStyleNone AwardStyle = iota
	AwardStylePlacement
	AwardStyleSpecial
)

// StyleOf derives the event style. Seeding keeps an event from holding both kinds.
func StyleOf(awards []*Award) AwardStyle {
	switch {
	case len(awards) == 0:
		return AwardStyleNone
	case awards[0].Special:
		return AwardStyleSpecial
	default:
		return AwardStylePlacement
	}
}

// CheckSeeds rejects seeds that would mix award kinds on one event.
func CheckSeeds(existing []*Award, seeds []AwardSeed) error {
	style := StyleOf(existing)
	for _, seed := range seeds {
		if strings.TrimSpace(seed.Name) == "" {
			return ErrEmptyAwardName
		}
		next := AwardStylePlacement
		if seed.Special {
			next = AwardStyleSpecial
		}
		if style != AwardStyleNone && style != next {
			return ErrMixedAwardKinds
		}
		style = next
	}
	return nil
}

// PlacementRank maps a placement award name to the rank it follows, or 0 when it follows none.
// Runner-up patterns take precedence so a "1st Runner Up" row follows rank 2.
func PlacementRank(name string) int {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "2nd") || strings.Contains(lower, "runner up"):
		return 2
	case strings.Contains(lower, "1st") || strings.Contains(lower, "champion"):
		return 1
	default:
		return 0
	}
}
