package showserver

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/http/mapper"
	ownermapper "github.com/Apurer/petshow-api/internal/domains/owners/adapters/http/mapper"
	participationmapper "github.com/Apurer/petshow-api/internal/domains/participation/adapters/http/mapper"
	petmapper "github.com/Apurer/petshow-api/internal/domains/pets/adapters/http/mapper"
	apierrors "github.com/Apurer/petshow-api/internal/shared/errors"
)

// responder tries the participation mapper first: its sentinels may wrap errors from the other contexts.
var responder = apierrors.NewChainedResponder("",
	participationmapper.ProblemFor,
	petmapper.ProblemFor,
	catalogmapper.ProblemFor,
	ownermapper.ProblemFor,
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func badRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.BindingProblem(err))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func parseIDQuery(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
