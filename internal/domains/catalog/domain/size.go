package domain

import "errors"

// SizeCategory is the ordinal size classification used by breeds, pets and event limits.
type SizeCategory int

const (
	SizeSmall  SizeCategory = 1
	SizeMedium SizeCategory = 2
	SizeLarge  SizeCategory = 3
)

var ErrInvalidSize = errors.New("size category must be small, medium or large")

// Valid reports whether the value is one of the seeded categories.
func (s SizeCategory) Valid() bool {
	return s >= SizeSmall && s <= SizeLarge
}

func (s SizeCategory) String() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	default:
		return "Unknown"
	}
}

// ParseSizeCategory accepts the display names used by the catalog.
func ParseSizeCategory(name string) (SizeCategory, error) {
	switch name {
	case "Small", "small":
		return SizeSmall, nil
	case "Medium", "medium":
		return SizeMedium, nil
	case "Large", "large":
		return SizeLarge, nil
	default:
		return 0, ErrInvalidSize
	}
}

// SizeCategories lists the reference rows in ordinal order.
func SizeCategories() []SizeCategory {
	return []SizeCategory{SizeSmall, SizeMedium, SizeLarge}
}
