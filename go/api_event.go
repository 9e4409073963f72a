package showserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/petshow-api/internal/domains/catalog/ports"
)

// EventAPI serves event setup and breed reference data.
type EventAPI struct {
	service catalogports.Service
}

// NewEventAPI creates an EventAPI backed by the catalog service.
func NewEventAPI(service catalogports.Service) EventAPI {
	return EventAPI{service: service}
}

// Post /v1/events
// Creates a show event
func (api *EventAPI) CreateEvent(c *gin.Context) {
	var payload catalogmapper.Event
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	event, err := catalogmapper.ToDomainEvent(payload)
	if err != nil {
		badRequest(c, err)
		return
	}
	created, err := api.service.CreateEvent(c.Request.Context(), event)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainEvent(created))
}

// Get /v1/events
// Lists events, only those accepting registrations when open=true
func (api *EventAPI) ListEvents(c *gin.Context) {
	openOnly := false
	if raw := c.Query("open"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		openOnly = parsed
	}
	events, err := api.service.ListEvents(c.Request.Context(), openOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainEventList(events))
}

// Get /v1/events/:eventId
// Finds an event by id
func (api *EventAPI) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	event, err := api.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainEvent(event))
}

// Put /v1/events/:eventId/status
// Opens or closes registration for an event
func (api *EventAPI) SetEventStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	var payload catalogmapper.EventStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	event, err := api.service.SetEventOpen(c.Request.Context(), id, payload.Open)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainEvent(event))
}

// Post /v1/breeds
// Adds a breed to the reference list
func (api *EventAPI) CreateBreed(c *gin.Context) {
	var payload catalogmapper.Breed
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	breed, err := catalogmapper.ToDomainBreed(payload)
	if err != nil {
		badRequest(c, err)
		return
	}
	created, err := api.service.CreateBreed(c.Request.Context(), breed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainBreed(created))
}

// Get /v1/breeds
// Lists breeds
func (api *EventAPI) ListBreeds(c *gin.Context) {
	breeds, err := api.service.ListBreeds(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBreedList(breeds))
}
