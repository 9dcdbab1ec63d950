package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

const (
	clientDashboardPath     = "/dashboard/client/"
	freelancerDashboardPath = "/dashboard/freelancer/"
	jobsPath                = "/jobs/"
	homePath                = "/"
)

// DashboardHandler serves the role landing pages.
type DashboardHandler struct {
	jobService         *services.JobService
	applicationService *services.ApplicationService
}

func NewDashboardHandler(jobService *services.JobService, applicationService *services.ApplicationService) *DashboardHandler {
	return &DashboardHandler{
		jobService:         jobService,
		applicationService: applicationService,
	}
}

// Home sends the user to the dashboard of their role. Client wins for
// dual-role users; users without a role land on the public listing.
func (h *DashboardHandler) Home(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	switch {
	case principal.IsClient():
		c.Redirect(http.StatusFound, clientDashboardPath)
	case principal.IsFreelancer():
		c.Redirect(http.StatusFound, freelancerDashboardPath)
	default:
		c.Redirect(http.StatusFound, jobsPath)
	}
}

// ClientDashboard lists the client's own listings.
func (h *DashboardHandler) ClientDashboard(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	if !principal.IsClient() {
		c.Redirect(http.StatusFound, homePath)
		return
	}

	jobs, err := h.jobService.ListClientJobs(principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": dto.ToJobDTOs(jobs),
	})
}

// FreelancerDashboard lists the freelancer's applications with job and interview.
func (h *DashboardHandler) FreelancerDashboard(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	if !principal.IsFreelancer() {
		c.Redirect(http.StatusFound, homePath)
		return
	}

	apps, err := h.applicationService.ListForFreelancer(principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": dto.ToApplicationDTOs(apps),
	})
}
