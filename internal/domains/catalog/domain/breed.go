package domain

import (
	"errors"
	"strings"
)

// Breed is reference data linked to pets through the breed junction.
type Breed struct {
	ID   int64
	Name string
	Size SizeCategory
}

var ErrEmptyBreedName = errors.New("breed name is required")

// NewBreed validates and constructs a breed.
func NewBreed(id int64, name string, size SizeCategory) (*Breed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyBreedName
	}
	if !size.Valid() {
		return nil, ErrInvalidSize
	}
	return &Breed{ID: id, Name: name, Size: size}, nil
}
