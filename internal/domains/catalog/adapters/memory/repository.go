package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	"github.com/Apurer/petshow-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter.
type Repository struct {
	mu          sync.RWMutex
	events      map[int64]*domain.Event
	breeds      map[int64]*domain.Breed
	nextEventID int64
	nextBreedID int64
}

func NewRepository() *Repository {
	return &Repository{
		events: map[int64]*domain.Event{},
		breeds: map[int64]*domain.Breed{},
	}
}

func (r *Repository) SaveEvent(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, errors.New("event is nil")
	}
	clone := event.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextEventID++
		clone.ID = r.nextEventID
	} else if clone.ID > r.nextEventID {
		r.nextEventID = clone.ID
	}
	r.events[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.events[id]
	if !ok {
		return nil, ports.ErrEventNotFound
	}
	return event.Clone(), nil
}

func (r *Repository) ListEvents(_ context.Context, openOnly bool) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Event, 0, len(r.events))
	for _, event := range r.events {
		if openOnly && !event.Open {
			continue
		}
		list = append(list, event.Clone())
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *Repository) SaveBreed(_ context.Context, breed *domain.Breed) (*domain.Breed, error) {
	if breed == nil {
		return nil, errors.New("breed is nil")
	}
	clone := *breed
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.breeds {
		if id != clone.ID && strings.EqualFold(existing.Name, clone.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	if clone.ID == 0 {
		r.nextBreedID++
		clone.ID = r.nextBreedID
	} else if clone.ID > r.nextBreedID {
		r.nextBreedID = clone.ID
	}
	r.breeds[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) ListBreeds(_ context.Context) ([]*domain.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Breed, 0, len(r.breeds))
	for _, breed := range r.breeds {
		clone := *breed
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
