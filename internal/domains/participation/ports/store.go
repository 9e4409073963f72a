package ports

import (
	"context"

	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
)

// Store is the transactional view of participation state. Implementations are only valid
// inside the callback handed to Transactor.RunInTx.
type Store interface {
	// LockEvent serialises writers on an event so the capacity count cannot race.
	LockEvent(ctx context.Context, eventID int64) error
	// CountPaidPets returns the distinct pets holding a paid entry for the event.
	CountPaidPets(ctx context.Context, eventID int64) (int, error)
	// CountOwnerPaidPets returns the distinct pets of one owner holding a paid entry for the event.
	CountOwnerPaidPets(ctx context.Context, ownerID, eventID int64) (int, error)
	// FindPaidEntry returns the paid entry of the pet at the event, or nil when there is none.
	FindPaidEntry(ctx context.Context, petID, eventID int64) (*domain.Entry, error)

	CreateRegistration(ctx context.Context, reg *domain.Registration) error
	// GetRegistration loads a registration, locking its row when forUpdate is set.
	GetRegistration(ctx context.Context, id int64, forUpdate bool) (*domain.Registration, error)
	UpdateRegistration(ctx context.Context, reg *domain.Registration) error
	ListOwnerRegistrations(ctx context.Context, ownerID int64) ([]domain.RegistrationSummary, error)

	// CreateEntry fails with domain.ErrAlreadyRegistered when the pet already has an entry at the event.
	CreateEntry(ctx context.Context, entry *domain.Entry) error
	GetEntry(ctx context.Context, id int64) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, entry *domain.Entry) error
	ListEntriesByRegistration(ctx context.Context, registrationID int64) ([]*domain.Entry, error)
	ListEventEntries(ctx context.Context, eventID int64) ([]*domain.Entry, error)
	// DeleteEntries removes the registration's entries at the event and reports how many went.
	DeleteEntries(ctx context.Context, registrationID, eventID int64) (int, error)

	ListAwards(ctx context.Context, eventID int64) ([]*domain.Award, error)
	CreateAward(ctx context.Context, award *domain.Award) error
	UpdateAward(ctx context.Context, award *domain.Award) error

	AppendLog(ctx context.Context, entry *domain.LogEntry) error
	ListLogs(ctx context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error)

	// ReleasePet deletes the pet's entries and unbinds its awards. It returns the ids of the
	// events the pet took part in so their rankings can be rebuilt.
	ReleasePet(ctx context.Context, petID int64) ([]int64, error)

	// Join returns ctx bound to this unit of work, so repositories of other contexts that
	// honour it commit or roll back together with the store.
	Join(ctx context.Context) context.Context
}

// Transactor runs a unit of work atomically. Any error returned by fn rolls everything back.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}
