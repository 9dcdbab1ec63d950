package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
)

// Handlers bundles every route handler of the API.
type Handlers struct {
	Auth        *AuthHandler
	Dashboard   *DashboardHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Interview   *InterviewHandler
	Profile     *ProfileHandler
}

// RegisterRoutes mounts the marketplace routes. Session middleware must
// already be installed on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Job Marketplace API is running",
		})
	})

	// Public
	r.POST("/register/", h.Auth.Register)
	r.POST("/login/", h.Auth.Login)
	r.POST("/logout/", h.Auth.Logout)
	r.GET("/jobs/", h.Job.ListJobs)
	r.GET("/categories/", h.Job.ListCategories)
	r.GET("/jobs/:id/", middleware.OptionalAuth(), middleware.LoadPrincipal(), h.Job.GetJob)

	// Session required
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(), middleware.LoadPrincipal())
	{
		authed.GET("/", h.Dashboard.Home)
		authed.GET("/dashboard/", h.Dashboard.Home)
		authed.GET("/dashboard/client/", h.Dashboard.ClientDashboard)
		authed.GET("/dashboard/freelancer/", h.Dashboard.FreelancerDashboard)
		authed.GET("/me/", h.Auth.GetCurrentUser)

		authed.POST("/profile/update/", h.Profile.UpdateProfile)
		authed.POST("/profile/verification/", h.Profile.SubmitVerification)

		authed.GET("/interview/:id/", h.Interview.GetInterview)
	}

	clients := r.Group("/")
	clients.Use(middleware.RequireAuth(), middleware.LoadPrincipal(), middleware.RequireClient())
	{
		clients.POST("/post-job/", h.Job.PostJob)
		clients.POST("/post-job/draft/", h.Job.DraftJob)
		clients.POST("/jobs/:id/close/", h.Job.CloseJob)
		clients.DELETE("/jobs/:id/", h.Job.DeleteJob)
		clients.GET("/job/:id/applications/", h.Application.ListForJob)
		clients.POST("/application/:id/update/:status/", h.Application.UpdateStatus)
		clients.POST("/application/:id/schedule/", h.Interview.Schedule)
		clients.POST("/interview/:id/reschedule/", h.Interview.Reschedule)
	}

	freelancers := r.Group("/")
	freelancers.Use(middleware.RequireAuth(), middleware.LoadPrincipal(), middleware.RequireFreelancer())
	{
		freelancers.POST("/jobs/:id/", h.Application.Apply)
	}

	admins := r.Group("/")
	admins.Use(middleware.RequireAuth(), middleware.LoadPrincipal(), middleware.RequireAdmin())
	{
		admins.POST("/categories/", h.Job.CreateCategory)
		admins.DELETE("/categories/:id/", h.Job.DeleteCategory)
	}
}
