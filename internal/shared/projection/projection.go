package projection

import "time"

// Metadata records when a stored aggregate was first written and last changed.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamp returns the metadata for a write at now. A zero previous value marks
// the first write, otherwise the original creation time is carried forward.
func Stamp(previous Metadata, now time.Time) Metadata {
	if previous.CreatedAt.IsZero() {
		return Metadata{CreatedAt: now, UpdatedAt: now}
	}
	return Metadata{CreatedAt: previous.CreatedAt, UpdatedAt: now}
}

// Projection pairs an aggregate with its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Of builds a projection from an entity and its stored timestamps.
func Of[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}
