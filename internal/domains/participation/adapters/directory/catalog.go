package directory

import (
	"context"
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/petshow-api/internal/domains/catalog/ports"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

var _ ports.EventCatalog = (*EventCatalog)(nil)

// EventCatalog reads events from the catalog context.
type EventCatalog struct {
	repo catalogports.Repository
}

// NewEventCatalog wraps a catalog repository.
func NewEventCatalog(repo catalogports.Repository) *EventCatalog {
	return &EventCatalog{repo: repo}
}

// GetEvent loads an event snapshot.
func (c *EventCatalog) GetEvent(ctx context.Context, id int64) (*catalogdomain.Event, error) {
	event, err := c.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrEventNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrEventNotFound, id)
		}
		return nil, err
	}
	return event, nil
}
