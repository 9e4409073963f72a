package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStamp(t *testing.T) {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	created := Stamp(Metadata{}, first)
	assert.Equal(t, first, created.CreatedAt)
	assert.Equal(t, first, created.UpdatedAt)

	updated := Stamp(created, later)
	assert.Equal(t, first, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestOf(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Of("rex", at, at.Add(time.Minute))
	assert.Equal(t, "rex", p.Entity)
	assert.Equal(t, at, p.Metadata.CreatedAt)
	assert.Equal(t, at.Add(time.Minute), p.Metadata.UpdatedAt)
}
