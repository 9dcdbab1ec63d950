package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

// respondServiceError maps service errors onto API error responses. Ownership
// failures answer 404 so other clients' resources stay invisible.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Field, validationErr.Message)

	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrInterviewNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrNotClient),
		errors.Is(err, services.ErrNotFreelancer),
		errors.Is(err, services.ErrNotAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPrincipalAbsent):
		apierrors.Unauthorized(c, "")

	case errors.Is(err, models.ErrInvalidStatusTarget),
		errors.Is(err, services.ErrOwnJob),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidBudget),
		errors.Is(err, services.ErrProposalRequired),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrCategoryNameRequired),
		errors.Is(err, services.ErrBriefRequired),
		errors.Is(err, services.ErrNoProfileToUpdate):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrJobClosed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrApplicationNotApproved),
		errors.Is(err, services.ErrInterviewExists),
		errors.Is(err, services.ErrCategoryExists):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())

	default:
		log.Printf("request %s: %v", middleware.GetRequestID(c), err)
		apierrors.InternalError(c, "")
	}
}

// parseIDParam reads a numeric path parameter, answering 400 when malformed.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// principalFrom returns the principal loaded by middleware.LoadPrincipal.
func principalFrom(c *gin.Context) (services.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
	}
	return principal, ok
}
