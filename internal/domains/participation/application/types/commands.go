package types

import (
	"time"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

// RegisterInput enrolls one pet of the acting owner in an event.
type RegisterInput struct {
	OwnerID          int64
	PetID            int64
	EventID          int64
	RegistrationDate time.Time
	IdempotencyKey   string
}

// TransferInput moves a paid registration to another event.
type TransferInput struct {
	OwnerID        int64
	RegistrationID int64
	NewEventID     int64
	Reason         string
}

// WithdrawInput cancels a paid registration.
type WithdrawInput struct {
	OwnerID        int64
	RegistrationID int64
	Reason         string
}

// AttendanceInput marks an entry's check-in state.
type AttendanceInput struct {
	EventID int64
	EntryID int64
	Status  string
}

// RecordScoreInput stores a judged result on an entry of a placement event.
type RecordScoreInput struct {
	EntryID int64
	EventID int64
	Score   float64
}

// SeedAwardsInput creates the award rows of an event.
type SeedAwardsInput struct {
	EventID int64
	Awards  []domain.AwardSeed
}

// AssignAwardInput binds a special award to an entered pet.
type AssignAwardInput struct {
	EventID     int64
	AwardName   string
	PetID       int64
	Description string
}

// ClearAwardInput unbinds special awards from a pet. An empty name clears all of them.
type ClearAwardInput struct {
	EventID   int64
	AwardName string
	PetID     int64
}

// QuoteRegistrationInput previews a registration without writing.
type QuoteRegistrationInput struct {
	OwnerID int64
	PetID   int64
	EventID int64
}

// QuoteTransferInput previews a transfer without writing.
type QuoteTransferInput struct {
	OwnerID        int64
	RegistrationID int64
	NewEventID     int64
}

// RegistrationRef addresses a registration of the acting owner.
type RegistrationRef struct {
	OwnerID        int64
	RegistrationID int64
}
