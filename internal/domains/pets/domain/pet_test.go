package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

func TestNewPet_Validates(t *testing.T) {
	_, err := NewPet(0, 0, "Rex", catalogdomain.SizeMedium, 12)
	require.ErrorIs(t, err, ErrInvalidOwner)

	_, err = NewPet(0, 1, " ", catalogdomain.SizeMedium, 12)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewPet(0, 1, "Rex", 0, 12)
	require.ErrorIs(t, err, catalogdomain.ErrInvalidSize)

	_, err = NewPet(0, 1, "Rex", catalogdomain.SizeMedium, 0)
	require.ErrorIs(t, err, ErrInvalidWeight)

	pet, err := NewPet(0, 1, "Rex", catalogdomain.SizeMedium, 12)
	require.NoError(t, err)
	require.Equal(t, SexMale, pet.Sex)
}

func TestReplaceBreeds_Dedupes(t *testing.T) {
	pet := &Pet{}
	pet.ReplaceBreeds([]int64{3, 1, 3, 0, -2, 2})
	require.Equal(t, []int64{1, 2, 3}, pet.BreedIDs)
}

func TestSetSex_AcceptsLowercase(t *testing.T) {
	pet := &Pet{}
	require.NoError(t, pet.SetSex("f"))
	require.Equal(t, SexFemale, pet.Sex)
	require.ErrorIs(t, pet.SetSex("x"), ErrInvalidSex)
}
