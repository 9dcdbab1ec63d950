package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
	"github.com/yukikurage/job-marketplace-api/internal/services"
	"github.com/yukikurage/job-marketplace-api/internal/utils"
)

const deadlineLayout = "2006-01-02"

// JobHandler serves listings and categories.
type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// PostJob creates a listing for the current client.
func (h *JobHandler) PostJob(c *gin.Context) {
	type PostJobRequest struct {
		Title       string  `json:"title" binding:"required,max=200"`
		Description string  `json:"description"`
		Budget      float64 `json:"budget" binding:"required"`
		Deadline    *string `json:"deadline"`
		CategoryID  *uint64 `json:"category_id"`
	}

	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse(deadlineLayout, *req.Deadline)
		if err != nil {
			apierrors.ValidationFailed(c, "deadline", "Deadline must be formatted as YYYY-MM-DD")
			return
		}
		deadline = &parsed
	}

	job, err := h.jobService.CreateJob(principal, services.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    deadline,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJobDTO(*job))
}

// DraftJob suggests a listing from a one-line brief.
func (h *JobHandler) DraftJob(c *gin.Context) {
	type DraftJobRequest struct {
		Brief string `json:"brief" binding:"required,max=2000"`
	}

	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req DraftJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.jobService.DraftJob(c.Request.Context(), principal, req.Brief)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobDraftDTO{
		Title:           draft.Title,
		Description:     draft.Description,
		SuggestedBudget: draft.SuggestedBudget,
		Skills:          draft.Skills,
	})
}

// ListJobs returns active listings, newest first.
// Accepts page, page_size and category_id query parameters.
func (h *JobHandler) ListJobs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var categoryID *uint64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category_id")
			return
		}
		categoryID = &id
	}

	jobs, total, err := h.jobService.ListActiveJobs(services.ListJobsInput{
		CategoryID: categoryID,
		Page:       params.Page,
		PageSize:   params.PageSize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobListResponse(jobs, params, total))
}

// GetJob returns one listing. Logged-in viewers also learn whether they
// applied or own it.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	detail := dto.JobDetailDTO{JobDTO: dto.ToJobDTO(*job)}
	if principal, loggedIn := middleware.GetPrincipal(c); loggedIn {
		detail.IsOwner = principal.OwnsJob(job)
		detail.HasApplied, err = h.jobService.HasApplied(principal, jobID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, detail)
}

// CloseJob stops a listing from accepting applications.
func (h *JobHandler) CloseJob(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.CloseJob(principal, jobID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJobDTO(*job))
}

// DeleteJob removes a listing with its applications and interviews.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(principal, jobID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCategories returns all categories.
func (h *JobHandler) ListCategories(c *gin.Context) {
	categories, err := h.jobService.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToCategoryDTOs(categories),
	})
}

// CreateCategory adds a category.
func (h *JobHandler) CreateCategory(c *gin.Context) {
	type CreateCategoryRequest struct {
		Name string `json:"name" binding:"required,max=100"`
	}

	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.jobService.CreateCategory(principal, strings.TrimSpace(req.Name))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// DeleteCategory removes a category; its listings become uncategorized.
func (h *JobHandler) DeleteCategory(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteCategory(principal, categoryID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
