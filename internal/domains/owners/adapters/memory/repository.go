package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petshow-api/internal/domains/owners/domain"
	"github.com/Apurer/petshow-api/internal/domains/owners/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps owners in memory for local runs and tests.
type Repository struct {
	mu     sync.RWMutex
	owners map[int64]*domain.Owner
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{owners: map[int64]*domain.Owner{}}
}

func (r *Repository) Save(_ context.Context, owner *domain.Owner) (*domain.Owner, error) {
	if owner == nil {
		return nil, errors.New("owner is nil")
	}
	clone := *owner
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.Email != "" {
		for id, existing := range r.owners {
			if id != clone.ID && strings.EqualFold(existing.Email, clone.Email) {
				return nil, ports.ErrDuplicateEmail
			}
		}
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.owners[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.owners[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *owner
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Owner, 0, len(r.owners))
	for _, owner := range r.owners {
		clone := *owner
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
