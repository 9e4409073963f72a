package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsRegistrationOn_InclusiveDeadline(t *testing.T) {
	e := &Event{RegistrationDeadline: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, e.AcceptsRegistrationOn(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, e.AcceptsRegistrationOn(time.Date(2026, 2, 27, 8, 0, 0, 0, time.UTC)))
	assert.False(t, e.AcceptsRegistrationOn(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, DaysBetween(start, end))
	assert.Equal(t, -14, DaysBetween(end, start))
}

func TestClone_DetachesOptionalBounds(t *testing.T) {
	weight := 10.0
	size := SizeSmall
	e := &Event{MinWeightKg: &weight, MinSize: &size}

	c := e.Clone()
	*c.MinWeightKg = 20
	*c.MinSize = SizeLarge

	assert.Equal(t, 10.0, *e.MinWeightKg)
	assert.Equal(t, SizeSmall, *e.MinSize)
}
