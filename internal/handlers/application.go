package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

// ApplicationHandler serves proposals and their review.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Apply submits the current freelancer's proposal for a listing.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	type ApplyRequest struct {
		ProposalText    string  `json:"proposal_text" binding:"required"`
		ExpectedPayment float64 `json:"expected_payment" binding:"required"`
	}

	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.applicationService.Apply(principal, services.ApplyInput{
		JobID:           jobID,
		ProposalText:    req.ProposalText,
		ExpectedPayment: req.ExpectedPayment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListForJob returns the applications on a listing the current client owns.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, apps, err := h.applicationService.ListForJob(principal, jobID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobApplicationsResponse{
		Job:          dto.ToJobDTO(*job),
		Applications: dto.ToApplicationDTOs(apps),
	})
}

// UpdateStatus approves or rejects an application.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.UpdateStatus(principal, appID, c.Param("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusUpdateResponse{
		Application: dto.ToApplicationDTO(*app),
		Next:        nextAfterStatus(app),
	})
}

func nextAfterStatus(app *models.Application) string {
	if app.Status == models.ApplicationStatusApproved {
		return fmt.Sprintf("/application/%d/schedule/", app.ID)
	}
	return fmt.Sprintf("/job/%d/applications/", app.JobID)
}
