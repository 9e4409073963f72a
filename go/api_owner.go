package showserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ownermapper "github.com/Apurer/petshow-api/internal/domains/owners/adapters/http/mapper"
	ownerports "github.com/Apurer/petshow-api/internal/domains/owners/ports"
)

// OwnerAPI wires HTTP transport with the owners bounded context.
type OwnerAPI struct {
	service ownerports.Service
}

// NewOwnerAPI creates an OwnerAPI backed by the provided service.
func NewOwnerAPI(service ownerports.Service) OwnerAPI {
	return OwnerAPI{service: service}
}

// Post /v1/owners
// Creates an owner profile
func (api *OwnerAPI) CreateOwner(c *gin.Context) {
	var payload ownermapper.Owner
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	created, err := api.service.CreateOwner(c.Request.Context(), ownermapper.ToDomainOwner(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ownermapper.FromDomainOwner(created))
}

// Get /v1/owners
// Lists owner profiles
func (api *OwnerAPI) ListOwners(c *gin.Context) {
	owners, err := api.service.ListOwners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownermapper.FromDomainOwnerList(owners))
}

// Get /v1/owners/:ownerId
// Finds an owner by id
func (api *OwnerAPI) GetOwner(c *gin.Context) {
	id, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	owner, err := api.service.GetOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownermapper.FromDomainOwner(owner))
}

// Put /v1/owners/:ownerId
// Replaces the profile fields of an owner
func (api *OwnerAPI) UpdateOwner(c *gin.Context) {
	id, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	var payload ownermapper.Owner
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := api.service.UpdateOwner(c.Request.Context(), id, ownermapper.ToDomainOwner(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ownermapper.FromDomainOwner(updated))
}
