// Package showserver exposes the pet show API over HTTP.
package showserver

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation problems name fields the way clients send them.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router. Middleware is installed before any route so it covers all of them.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	useJSONFieldNames()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API part.
type ApiHandleFunctions struct {
	// Routes for the OwnerAPI part of the API
	OwnerAPI OwnerAPI
	// Routes for the EventAPI part of the API
	EventAPI EventAPI
	// Routes for the PetAPI part of the API
	PetAPI PetAPI
	// Routes for the RegistrationAPI part of the API
	RegistrationAPI RegistrationAPI
	// Routes for the ParticipationAPI part of the API
	ParticipationAPI ParticipationAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateOwner", http.MethodPost, "/v1/owners", handleFunctions.OwnerAPI.CreateOwner},
		{"ListOwners", http.MethodGet, "/v1/owners", handleFunctions.OwnerAPI.ListOwners},
		{"GetOwner", http.MethodGet, "/v1/owners/:ownerId", handleFunctions.OwnerAPI.GetOwner},
		{"UpdateOwner", http.MethodPut, "/v1/owners/:ownerId", handleFunctions.OwnerAPI.UpdateOwner},

		{"CreateEvent", http.MethodPost, "/v1/events", handleFunctions.EventAPI.CreateEvent},
		{"ListEvents", http.MethodGet, "/v1/events", handleFunctions.EventAPI.ListEvents},
		{"GetEvent", http.MethodGet, "/v1/events/:eventId", handleFunctions.EventAPI.GetEvent},
		{"SetEventStatus", http.MethodPut, "/v1/events/:eventId/status", handleFunctions.EventAPI.SetEventStatus},
		{"CreateBreed", http.MethodPost, "/v1/breeds", handleFunctions.EventAPI.CreateBreed},
		{"ListBreeds", http.MethodGet, "/v1/breeds", handleFunctions.EventAPI.ListBreeds},

		{"AddPet", http.MethodPost, "/v1/pets", handleFunctions.PetAPI.AddPet},
		{"ListMyPets", http.MethodGet, "/v1/pets", handleFunctions.PetAPI.ListMyPets},
		{"GetPet", http.MethodGet, "/v1/pets/:petId", handleFunctions.PetAPI.GetPet},
		{"UpdatePet", http.MethodPut, "/v1/pets/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/v1/pets/:petId", handleFunctions.PetAPI.DeletePet},

		{"Register", http.MethodPost, "/v1/registrations", handleFunctions.RegistrationAPI.Register},
		{"QuoteRegistration", http.MethodPost, "/v1/registrations/quote", handleFunctions.RegistrationAPI.QuoteRegistration},
		{"ListMyRegistrations", http.MethodGet, "/v1/registrations", handleFunctions.RegistrationAPI.ListMyRegistrations},
		{"GetRegistration", http.MethodGet, "/v1/registrations/:registrationId", handleFunctions.RegistrationAPI.GetRegistration},
		{"QuoteTransfer", http.MethodPost, "/v1/registrations/:registrationId/transfer/quote", handleFunctions.RegistrationAPI.QuoteTransfer},
		{"Transfer", http.MethodPost, "/v1/registrations/:registrationId/transfer", handleFunctions.RegistrationAPI.Transfer},
		{"QuoteWithdrawal", http.MethodGet, "/v1/registrations/:registrationId/withdrawal", handleFunctions.RegistrationAPI.QuoteWithdrawal},
		{"Withdraw", http.MethodPost, "/v1/registrations/:registrationId/withdrawal", handleFunctions.RegistrationAPI.Withdraw},

		{"EventStanding", http.MethodGet, "/v1/events/:eventId/standing", handleFunctions.ParticipationAPI.EventStanding},
		{"EventEntries", http.MethodGet, "/v1/events/:eventId/entries", handleFunctions.ParticipationAPI.EventEntries},
		{"SetAttendance", http.MethodPut, "/v1/events/:eventId/entries/:entryId/attendance", handleFunctions.ParticipationAPI.SetAttendance},
		{"RecordScore", http.MethodPut, "/v1/events/:eventId/entries/:entryId/score", handleFunctions.ParticipationAPI.RecordScore},
		{"EventAwards", http.MethodGet, "/v1/events/:eventId/awards", handleFunctions.ParticipationAPI.EventAwards},
		{"SeedAwards", http.MethodPost, "/v1/events/:eventId/awards", handleFunctions.ParticipationAPI.SeedAwards},
		{"AssignAward", http.MethodPost, "/v1/events/:eventId/awards/assignments", handleFunctions.ParticipationAPI.AssignAward},
		{"ClearAward", http.MethodDelete, "/v1/events/:eventId/awards/assignments", handleFunctions.ParticipationAPI.ClearAward},
		{"ListLog", http.MethodGet, "/v1/participation-log", handleFunctions.ParticipationAPI.ListLog},
	}
}
