package showserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	participationmapper "github.com/Apurer/petshow-api/internal/domains/participation/adapters/http/mapper"
	participationtypes "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	participationdomain "github.com/Apurer/petshow-api/internal/domains/participation/domain"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// ParticipationAPI serves the organiser side of an event: the board, check-in, scoring and awards.
type ParticipationAPI struct {
	service participationports.Service
}

// NewParticipationAPI creates a ParticipationAPI backed by the participation service.
func NewParticipationAPI(service participationports.Service) ParticipationAPI {
	return ParticipationAPI{service: service}
}

// Get /v1/events/:eventId/standing
// Reports paid participants against capacity
func (api *ParticipationAPI) EventStanding(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	standing, err := api.service.EventStanding(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromStanding(standing))
}

// Get /v1/events/:eventId/entries
// Lists the entries of an event
func (api *ParticipationAPI) EventEntries(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	entries, err := api.service.EventEntries(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromEntries(entries))
}

// Put /v1/events/:eventId/entries/:entryId/attendance
// Marks an entry as checked in or absent
func (api *ParticipationAPI) SetAttendance(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}
	var payload participationmapper.AttendanceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := api.service.SetAttendance(c.Request.Context(), participationtypes.AttendanceInput{
		EventID: eventID,
		EntryID: entryID,
		Status:  payload.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromEntry(entry))
}

// Put /v1/events/:eventId/entries/:entryId/score
// Records a judged result and rebuilds the ranking
func (api *ParticipationAPI) RecordScore(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "entryId")
	if !ok {
		return
	}
	var payload participationmapper.ScoreRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	if payload.Score == nil {
		badRequest(c, errors.New("score is required"))
		return
	}
	result, err := api.service.RecordScore(c.Request.Context(), participationtypes.RecordScoreInput{
		EntryID: entryID,
		EventID: eventID,
		Score:   *payload.Score,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromScoreResult(result))
}

// Get /v1/events/:eventId/awards
// Lists the award board of an event
func (api *ParticipationAPI) EventAwards(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	awards, err := api.service.EventAwards(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromAwards(awards))
}

// Post /v1/events/:eventId/awards
// Creates the award rows of an event
func (api *ParticipationAPI) SeedAwards(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	var payload participationmapper.SeedAwardsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	awards, err := api.service.SeedAwards(c.Request.Context(), participationtypes.SeedAwardsInput{
		EventID: eventID,
		Awards:  participationmapper.ToSeeds(payload),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participationmapper.FromAwards(awards))
}

// Post /v1/events/:eventId/awards/assignments
// Binds a special award to an entered pet
func (api *ParticipationAPI) AssignAward(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	var payload participationmapper.AssignAwardRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	award, err := api.service.AssignAward(c.Request.Context(), participationtypes.AssignAwardInput{
		EventID:     eventID,
		AwardName:   payload.AwardName,
		PetID:       payload.PetID,
		Description: payload.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromAward(award))
}

// Delete /v1/events/:eventId/awards/assignments?petId=&awardName=
// Unbinds special awards from a pet, all of them when awardName is omitted
func (api *ParticipationAPI) ClearAward(c *gin.Context) {
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}
	petID, ok := parseIDQuery(c, "petId")
	if !ok {
		return
	}
	if petID == 0 {
		badRequest(c, errors.New("petId is required"))
		return
	}
	cleared, err := api.service.ClearAward(c.Request.Context(), participationtypes.ClearAwardInput{
		EventID:   eventID,
		AwardName: c.Query("awardName"),
		PetID:     petID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// Get /v1/participation-log?registrationId=&eventId=
// Lists the transfer and withdrawal history
func (api *ParticipationAPI) ListLog(c *gin.Context) {
	registrationID, ok := parseIDQuery(c, "registrationId")
	if !ok {
		return
	}
	eventID, ok := parseIDQuery(c, "eventId")
	if !ok {
		return
	}
	rows, err := api.service.ListLog(c.Request.Context(), participationdomain.LogFilter{RegistrationID: registrationID, EventID: eventID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromLog(rows))
}
