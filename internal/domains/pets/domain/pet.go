package domain

import (
	"errors"
	"sort"
	"strings"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

// Sex is recorded as the single-letter code shown on entry sheets.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID       int64
	OwnerID  int64
	Name     string
	Size     catalogdomain.SizeCategory
	Age      int
	Sex      Sex
	WeightKg float64
	Muzzle   bool
	Notes    string
	BreedIDs []int64
}

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrInvalidOwner  = errors.New("owner id must be greater than zero")
	ErrInvalidWeight = errors.New("weight must be greater than zero")
	ErrInvalidAge    = errors.New("age must be greater or equal to zero")
	ErrInvalidSex    = errors.New("sex must be M or F")
)

// NewPet validates the invariants and builds a new Pet aggregate.
func NewPet(id, ownerID int64, name string, size catalogdomain.SizeCategory, weightKg float64) (*Pet, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	p := &Pet{ID: id, OwnerID: ownerID, Sex: SexMale}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Resize(size); err != nil {
		return nil, err
	}
	if err := p.Weigh(weightKg); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

func (p *Pet) Resize(size catalogdomain.SizeCategory) error {
	if !size.Valid() {
		return catalogdomain.ErrInvalidSize
	}
	p.Size = size
	return nil
}

// Weigh stores the latest weight measurement in kilograms.
func (p *Pet) Weigh(kg float64) error {
	if kg <= 0 {
		return ErrInvalidWeight
	}
	p.WeightKg = kg
	return nil
}

func (p *Pet) SetAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	p.Age = age
	return nil
}

func (p *Pet) SetSex(sex Sex) error {
	switch Sex(strings.ToUpper(string(sex))) {
	case SexMale:
		p.Sex = SexMale
	case SexFemale:
		p.Sex = SexFemale
	default:
		return ErrInvalidSex
	}
	return nil
}

// ReplaceBreeds swaps the breed links, dropping duplicates and non-positive ids.
func (p *Pet) ReplaceBreeds(ids []int64) {
	seen := make(map[int64]struct{}, len(ids))
	breeds := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		breeds = append(breeds, id)
	}
	sort.Slice(breeds, func(i, j int) bool { return breeds[i] < breeds[j] })
	p.BreedIDs = breeds
}

// Validate re-checks every invariant, used before persisting a mutated aggregate.
func (p *Pet) Validate() error {
	if p.OwnerID <= 0 {
		return ErrInvalidOwner
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Size.Valid() {
		return catalogdomain.ErrInvalidSize
	}
	if p.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if p.Age < 0 {
		return ErrInvalidAge
	}
	if p.Sex != SexMale && p.Sex != SexFemale {
		return ErrInvalidSex
	}
	return nil
}

// Clone returns a copy that shares no slices with the receiver.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	c := *p
	if p.BreedIDs != nil {
		c.BreedIDs = append([]int64{}, p.BreedIDs...)
	}
	return &c
}
