package domain

import (
	"errors"
	"strings"
	"time"
)

// Event is a timed, capacity-limited show that pets can be entered into.
type Event struct {
	ID                   int64
	Name                 string
	Date                 time.Time
	Time                 string
	Location             string
	Type                 string
	MaxParticipants      int
	RegistrationDeadline time.Time
	Open                 bool
	BaseFee              float64
	ExtraPetDiscount     float64
	MinWeightKg          *float64
	MaxWeightKg          *float64
	MinSize              *SizeCategory
	MaxSize              *SizeCategory
	DistanceKm           *float64
	TimeLimitMinutes     *int
}

var (
	ErrEmptyEventName    = errors.New("event name is required")
	ErrInvalidCapacity   = errors.New("max participants must be greater than zero")
	ErrInvalidFee        = errors.New("fees must be greater or equal to zero")
	ErrMissingDate       = errors.New("event date and registration deadline are required")
	ErrDeadlineAfterDate = errors.New("registration deadline must not be after the event date")
	ErrInvalidWeightSpan = errors.New("minimum weight must not exceed maximum weight")
	ErrInvalidSizeSpan   = errors.New("minimum size must not exceed maximum size")
)

// Validate enforces the setup invariants of an event.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyEventName
	}
	if e.MaxParticipants <= 0 {
		return ErrInvalidCapacity
	}
	if e.BaseFee < 0 || e.ExtraPetDiscount < 0 {
		return ErrInvalidFee
	}
	if e.Date.IsZero() || e.RegistrationDeadline.IsZero() {
		return ErrMissingDate
	}
	if DateOf(e.RegistrationDeadline).After(DateOf(e.Date)) {
		return ErrDeadlineAfterDate
	}
	if e.MinWeightKg != nil && e.MaxWeightKg != nil && *e.MinWeightKg > *e.MaxWeightKg {
		return ErrInvalidWeightSpan
	}
	if e.MinSize != nil && !e.MinSize.Valid() {
		return ErrInvalidSize
	}
	if e.MaxSize != nil && !e.MaxSize.Valid() {
		return ErrInvalidSize
	}
	if e.MinSize != nil && e.MaxSize != nil && *e.MinSize > *e.MaxSize {
		return ErrInvalidSizeSpan
	}
	return nil
}

// Normalize strips the time of day from the civil dates.
func (e *Event) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	if !e.Date.IsZero() {
		e.Date = DateOf(e.Date)
	}
	if !e.RegistrationDeadline.IsZero() {
		e.RegistrationDeadline = DateOf(e.RegistrationDeadline)
	}
}

// AcceptsRegistrationOn reports whether a registration dated on the given day meets the deadline.
func (e *Event) AcceptsRegistrationOn(day time.Time) bool {
	return !DateOf(day).After(DateOf(e.RegistrationDeadline))
}

// Clone returns a deep copy so callers can hand out snapshots.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.MinWeightKg = cloneFloat(e.MinWeightKg)
	c.MaxWeightKg = cloneFloat(e.MaxWeightKg)
	c.DistanceKm = cloneFloat(e.DistanceKm)
	if e.MinSize != nil {
		v := *e.MinSize
		c.MinSize = &v
	}
	if e.MaxSize != nil {
		v := *e.MaxSize
		c.MaxSize = &v
	}
	if e.TimeLimitMinutes != nil {
		v := *e.TimeLimitMinutes
		c.TimeLimitMinutes = &v
	}
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
