package showserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/petshow-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/petshow-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/petshow-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pets bounded context. Every route acts for the owner in X-Owner-ID.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Post /v1/pets
// Adds a pet for the acting owner
func (api *PetAPI) AddPet(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	mutation, err := pethttpmapper.ToMutationInput(payload)
	if err != nil {
		badRequest(c, err)
		return
	}
	saved, err := api.service.AddPet(c.Request.Context(), petstypes.AddPetInput{OwnerID: ownerID, PetMutationInput: mutation})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Get /v1/pets
// Lists the acting owner's pets
func (api *PetAPI) ListMyPets(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	pets, err := api.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(pets))
}

// Get /v1/pets/:petId
// Finds a pet of the acting owner
func (api *PetAPI) GetPet(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetPet(c.Request.Context(), petstypes.PetIdentifier{OwnerID: ownerID, ID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Put /v1/pets/:petId
// Applies a partial update to a pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	mutation, err := pethttpmapper.ToMutationInput(payload)
	if err != nil {
		badRequest(c, err)
		return
	}
	updated, err := api.service.UpdatePet(c.Request.Context(), petstypes.UpdatePetInput{OwnerID: ownerID, ID: id, PetMutationInput: mutation})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

// Delete /v1/pets/:petId
// Deletes a pet together with its entries and award holdings
func (api *PetAPI) DeletePet(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.DeletePet(c.Request.Context(), petstypes.PetIdentifier{OwnerID: ownerID, ID: id}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
