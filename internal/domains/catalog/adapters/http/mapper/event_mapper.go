package mapper

import (
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/Apurer/petshow-api/internal/domains/catalog/application"
	"github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/petshow-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

// DateLayout is the civil date format used on the wire.
const DateLayout = "2006-01-02"

// Event is the HTTP representation of a show event.
type Event struct {
	ID                   int64    `json:"id,omitempty"`
	Name                 string   `json:"name"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time,omitempty"`
	Location             string   `json:"location,omitempty"`
	Type                 string   `json:"type,omitempty"`
	MaxParticipants      int      `json:"maxParticipants"`
	RegistrationDeadline string   `json:"registrationDeadline"`
	Open                 *bool    `json:"open,omitempty"`
	BaseFee              float64  `json:"baseFee"`
	ExtraPetDiscount     float64  `json:"extraPetDiscount"`
	MinWeightKg          *float64 `json:"minWeightKg,omitempty"`
	MaxWeightKg          *float64 `json:"maxWeightKg,omitempty"`
	MinSize              string   `json:"minSize,omitempty"`
	MaxSize              string   `json:"maxSize,omitempty"`
	DistanceKm           *float64 `json:"distanceKm,omitempty"`
	TimeLimitMinutes     *int     `json:"timeLimitMinutes,omitempty"`
}

// EventStatus toggles whether an event accepts registrations.
type EventStatus struct {
	Open bool `json:"open"`
}

// Breed is the HTTP representation of a breed.
type Breed struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Size string `json:"size"`
}

// ToDomainEvent parses the wire dates and sizes. Events are open unless stated otherwise.
func ToDomainEvent(input Event) (*domain.Event, error) {
	date, err := ParseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	deadline, err := ParseDate("registrationDeadline", input.RegistrationDeadline)
	if err != nil {
		return nil, err
	}
	minSize, err := parseOptionalSize(input.MinSize)
	if err != nil {
		return nil, err
	}
	maxSize, err := parseOptionalSize(input.MaxSize)
	if err != nil {
		return nil, err
	}
	open := true
	if input.Open != nil {
		open = *input.Open
	}
	return &domain.Event{
		ID:                   input.ID,
		Name:                 input.Name,
		Date:                 date,
		Time:                 input.Time,
		Location:             input.Location,
		Type:                 input.Type,
		MaxParticipants:      input.MaxParticipants,
		RegistrationDeadline: deadline,
		Open:                 open,
		BaseFee:              input.BaseFee,
		ExtraPetDiscount:     input.ExtraPetDiscount,
		MinWeightKg:          input.MinWeightKg,
		MaxWeightKg:          input.MaxWeightKg,
		MinSize:              minSize,
		MaxSize:              maxSize,
		DistanceKm:           input.DistanceKm,
		TimeLimitMinutes:     input.TimeLimitMinutes,
	}, nil
}

// FromDomainEvent maps a domain event into its transport form.
func FromDomainEvent(event *domain.Event) Event {
	open := event.Open
	out := Event{
		ID:                   event.ID,
		Name:                 event.Name,
		Date:                 FormatDate(event.Date),
		Time:                 event.Time,
		Location:             event.Location,
		Type:                 event.Type,
		MaxParticipants:      event.MaxParticipants,
		RegistrationDeadline: FormatDate(event.RegistrationDeadline),
		Open:                 &open,
		BaseFee:              event.BaseFee,
		ExtraPetDiscount:     event.ExtraPetDiscount,
		MinWeightKg:          event.MinWeightKg,
		MaxWeightKg:          event.MaxWeightKg,
		DistanceKm:           event.DistanceKm,
		TimeLimitMinutes:     event.TimeLimitMinutes,
	}
	if event.MinSize != nil {
		out.MinSize = event.MinSize.String()
	}
	if event.MaxSize != nil {
		out.MaxSize = event.MaxSize.String()
	}
	return out
}

// FromDomainEventList maps a slice of events.
func FromDomainEventList(list []*domain.Event) []Event {
	result := make([]Event, 0, len(list))
	for _, event := range list {
		result = append(result, FromDomainEvent(event))
	}
	return result
}

// ToDomainBreed parses the breed size name.
func ToDomainBreed(input Breed) (*domain.Breed, error) {
	size, err := domain.ParseSizeCategory(input.Size)
	if err != nil {
		return nil, err
	}
	return &domain.Breed{ID: input.ID, Name: input.Name, Size: size}, nil
}

// FromDomainBreed maps a breed into its transport form.
func FromDomainBreed(breed *domain.Breed) Breed {
	return Breed{ID: breed.ID, Name: breed.Name, Size: breed.Size.String()}
}

// FromDomainBreedList maps a slice of breeds.
func FromDomainBreedList(list []*domain.Breed) []Breed {
	result := make([]Breed, 0, len(list))
	for _, breed := range list {
		result = append(result, FromDomainBreed(breed))
	}
	return result
}

// ParseDate reads a civil date. An empty value yields the zero time.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must use the %s layout", field, DateLayout)
	}
	return day, nil
}

// FormatDate renders a civil date, or an empty string for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func parseOptionalSize(name string) (*domain.SizeCategory, error) {
	if name == "" {
		return nil, nil
	}
	size, err := domain.ParseSizeCategory(name)
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// ProblemFor maps catalog errors to problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrEventNotFound), errors.Is(err, catalogports.ErrBreedNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrDuplicateName):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput), errors.Is(err, domain.ErrInvalidSize):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
