package types

// PetMutationInput captures optional fields for create/update flows while preserving field presence.
type PetMutationInput struct {
	Name     *string
	SizeID   *int
	Age      *int
	Sex      *string
	WeightKg *float64
	Muzzle   *bool
	Notes    *string
	BreedIDs *[]int64
}

// AddPetInput registers a new pet for the acting owner.
type AddPetInput struct {
	OwnerID int64
	PetMutationInput
}

// UpdatePetInput applies a partial update to a pet of the acting owner.
type UpdatePetInput struct {
	OwnerID int64
	ID      int64
	PetMutationInput
}

// PetIdentifier scopes a pet lookup to the acting owner.
type PetIdentifier struct {
	OwnerID int64
	ID      int64
}
