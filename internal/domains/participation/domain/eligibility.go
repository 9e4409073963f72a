package domain

import (
	"fmt"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

// PetProfile is the snapshot of a pet the engine needs for ownership and eligibility checks.
type PetProfile struct {
	ID       int64
	OwnerID  int64
	Name     string
	Size     catalogdomain.SizeCategory
	WeightKg float64
}

// WarningCode identifies an eligibility warning.
type WarningCode string

const (
	WarningSizeTooSmall  WarningCode = "SIZE_TOO_SMALL"
	WarningSizeTooLarge  WarningCode = "SIZE_TOO_LARGE"
	WarningWeightTooLow  WarningCode = "WEIGHT_TOO_LOW"
	WarningWeightTooHigh WarningCode = "WEIGHT_TOO_HIGH"
)

// Warning is an advisory eligibility finding. It does not block registration on its own.
type Warning struct {
	Code    WarningCode
	Message string
}

// CheckEligibility compares the pet against the event's size and weight limits.
// An empty result means the pet fits every limit the event defines.
func CheckEligibility(pet PetProfile, event *catalogdomain.Event) []Warning {
	var warnings []Warning
	if event.MinSize != nil && pet.Size < *event.MinSize {
		warnings = append(warnings, Warning{
			Code:    WarningSizeTooSmall,
			Message: fmt.Sprintf("%s is %s, the event requires at least %s", pet.Name, pet.Size, *event.MinSize),
		})
	}
	if event.MaxSize != nil && pet.Size > *event.MaxSize {
		warnings = append(warnings, Warning{
			Code:    WarningSizeTooLarge,
			Message: fmt.Sprintf("%s is %s, the event allows at most %s", pet.Name, pet.Size, *event.MaxSize),
		})
	}
	if event.MinWeightKg != nil && pet.WeightKg < *event.MinWeightKg {
		warnings = append(warnings, Warning{
			Code:    WarningWeightTooLow,
			Message: fmt.Sprintf("%s weighs %.1f kg, below the %.1f kg minimum", pet.Name, pet.WeightKg, *event.MinWeightKg),
		})
	}
	if event.MaxWeightKg != nil && pet.WeightKg > *event.MaxWeightKg {
		warnings = append(warnings, Warning{
			Code:    WarningWeightTooHigh,
			Message: fmt.Sprintf("%s weighs %.1f kg, above the %.1f kg maximum", pet.Name, pet.WeightKg, *event.MaxWeightKg),
		})
	}
	return warnings
}
