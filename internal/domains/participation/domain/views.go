package domain

import "time"

// Standing summarises how full an event is.
type Standing struct {
	EventID         int64
	Participants    int
	MaxParticipants int
	AvailableSpots  int
}

// NewStanding derives the free spots, never below zero.
func NewStanding(eventID int64, participants, capacity int) Standing {
	available := capacity - participants
	if available < 0 {
		available = 0
	}
	return Standing{EventID: eventID, Participants: participants, MaxParticipants: capacity, AvailableSpots: available}
}

// HasRoomFor reports whether the given number of extra pets fits.
func (s Standing) HasRoomFor(pets int) bool {
	return s.Participants+pets <= s.MaxParticipants
}

// RegistrationSummary is one row of an owner's registration board.
type RegistrationSummary struct {
	RegistrationID   int64
	EventID          int64
	EventName        string
	EventDate        time.Time
	RegistrationDate time.Time
	TotalPaid        float64
	Status           RegistrationStatus
	CancelledOn      *time.Time
	PetIDs           []int64
}
