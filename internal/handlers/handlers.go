package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/services"
	"github.com/yukikurage/team-management-api/internal/utils"
	"github.com/yukikurage/team-management-api/internal/validation"
)

// listInput reads the search query and page shared by all list endpoints.
func listInput(c *gin.Context) services.ListInput {
	return services.ListInput{
		Query:      c.Query("query"),
		Pagination: utils.GetPaginationParams(c),
	}
}

// bindJSON decodes the request body, answering 400 when it is malformed.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func currentEmployeeID(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetEmployeeID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return id, ok
}

// respondError maps service errors to API errors. Anything unknown is logged
// and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	if errs, ok := validation.As(err); ok {
		apierrors.ValidationFailed(c, errs)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCatalogEntryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvitationAlreadyAccepted),
		errors.Is(err, services.ErrEmployeeExists),
		errors.Is(err, services.ErrCatalogEntryInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, err.Error())
	default:
		middleware.GetLogger(c).WithError(err).Error("request failed")
		apierrors.InternalError(c, "")
	}
}
