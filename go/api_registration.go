package showserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	participationmapper "github.com/Apurer/petshow-api/internal/domains/participation/adapters/http/mapper"
	participationtypes "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	participationports "github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

// RegistrationAPI serves the registration lifecycle of the acting owner.
// Register and Withdraw run through the workflow orchestrator so they are durable when Temporal is wired.
type RegistrationAPI struct {
	service   participationports.Service
	workflows participationports.WorkflowOrchestrator
}

// NewRegistrationAPI creates a RegistrationAPI. A nil orchestrator runs every use case directly on the service.
func NewRegistrationAPI(service participationports.Service, workflows participationports.WorkflowOrchestrator) RegistrationAPI {
	return RegistrationAPI{service: service, workflows: workflows}
}

// Post /v1/registrations
// Registers one pet in an event and takes payment
func (api *RegistrationAPI) Register(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	var payload participationmapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	input, err := participationmapper.ToRegisterInput(ownerID, payload, strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey)), time.Now())
	if err != nil {
		badRequest(c, err)
		return
	}
	var result *participationtypes.RegistrationResult
	if api.workflows != nil {
		result, err = api.workflows.Register(c.Request.Context(), input)
	} else {
		result, err = api.service.Register(c.Request.Context(), input)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, participationmapper.FromRegistrationResult(result))
}

// Post /v1/registrations/quote
// Previews price, eligibility and room without registering
func (api *RegistrationAPI) QuoteRegistration(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	var payload participationmapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := api.service.QuoteRegistration(c.Request.Context(), participationtypes.QuoteRegistrationInput{
		OwnerID: ownerID,
		PetID:   payload.PetID,
		EventID: payload.EventID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromRegistrationQuote(quote))
}

// Get /v1/registrations
// Lists the acting owner's registrations, newest first
func (api *RegistrationAPI) ListMyRegistrations(c *gin.Context) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return
	}
	summaries, err := api.service.ListOwnerRegistrations(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromSummaries(summaries))
}

// Get /v1/registrations/:registrationId
// Finds a registration with its entries
func (api *RegistrationAPI) GetRegistration(c *gin.Context) {
	ref, ok := registrationRef(c)
	if !ok {
		return
	}
	details, err := api.service.GetRegistration(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromRegistrationDetails(details))
}

// Post /v1/registrations/:registrationId/transfer/quote
// Previews the settlement of moving a registration
func (api *RegistrationAPI) QuoteTransfer(c *gin.Context) {
	ref, ok := registrationRef(c)
	if !ok {
		return
	}
	var payload participationmapper.TransferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := api.service.QuoteTransfer(c.Request.Context(), participationtypes.QuoteTransferInput{
		OwnerID:        ref.OwnerID,
		RegistrationID: ref.RegistrationID,
		NewEventID:     payload.NewEventID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromTransferQuote(quote))
}

// Post /v1/registrations/:registrationId/transfer
// Moves a registration to another event. A top-up needs confirmTopUp=true.
func (api *RegistrationAPI) Transfer(c *gin.Context) {
	ref, ok := registrationRef(c)
	if !ok {
		return
	}
	var payload participationmapper.TransferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	result, err := api.service.Transfer(c.Request.Context(), participationtypes.TransferInput{
		OwnerID:        ref.OwnerID,
		RegistrationID: ref.RegistrationID,
		NewEventID:     payload.NewEventID,
		Reason:         payload.Reason,
	}, participationports.AcceptTopUp(payload.ConfirmTopUp))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromTransferResult(result))
}

// Get /v1/registrations/:registrationId/withdrawal
// Previews the refund tier of a withdrawal
func (api *RegistrationAPI) QuoteWithdrawal(c *gin.Context) {
	ref, ok := registrationRef(c)
	if !ok {
		return
	}
	quote, err := api.service.QuoteWithdrawal(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromWithdrawalQuote(quote))
}

// Post /v1/registrations/:registrationId/withdrawal
// Cancels a registration and refunds by tier
func (api *RegistrationAPI) Withdraw(c *gin.Context) {
	ref, ok := registrationRef(c)
	if !ok {
		return
	}
	var payload participationmapper.WithdrawRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, err)
			return
		}
	}
	input := participationtypes.WithdrawInput{OwnerID: ref.OwnerID, RegistrationID: ref.RegistrationID, Reason: payload.Reason}
	var (
		result *participationtypes.WithdrawalResult
		err    error
	)
	if api.workflows != nil {
		result, err = api.workflows.Withdraw(c.Request.Context(), input)
	} else {
		result, err = api.service.Withdraw(c.Request.Context(), input)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participationmapper.FromWithdrawalResult(result))
}

func registrationRef(c *gin.Context) (participationtypes.RegistrationRef, bool) {
	ownerID, ok := actingOwner(c)
	if !ok {
		return participationtypes.RegistrationRef{}, false
	}
	id, ok := parseIDParam(c, "registrationId")
	if !ok {
		return participationtypes.RegistrationRef{}, false
	}
	return participationtypes.RegistrationRef{OwnerID: ownerID, RegistrationID: id}, true
}
