package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/petshow-api/internal/domains/pets/domain"
	"github.com/Apurer/petshow-api/internal/domains/pets/ports"
	"github.com/Apurer/petshow-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for local runs and tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	nextID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := pet.Clone()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	var previous projection.Metadata
	if entry, ok := r.pets[clone.ID]; ok {
		previous = entry.metadata
	}
	stored := &storedPet{pet: clone, metadata: projection.Stamp(previous, r.now())}
	r.pets[clone.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet and, with it, its breed links.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// ListByOwner returns the owner's pets ordered by id.
func (r *Repository) ListByOwner(_ context.Context, ownerID int64) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Pet]
	for _, entry := range r.pets {
		if entry.pet.OwnerID == ownerID {
			list = append(list, projectionCopy(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return projection.Of(entry.pet.Clone(), entry.metadata.CreatedAt, entry.metadata.UpdatedAt)
}
