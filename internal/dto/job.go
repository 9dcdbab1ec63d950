package dto

import (
	"time"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/utils"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// JobDTO represents a job listing in API responses
type JobDTO struct {
	ID          uint64       `json:"id"`
	ClientID    uint64       `json:"client_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Budget      float64      `json:"budget"`
	Deadline    *time.Time   `json:"deadline"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	Category    *CategoryDTO `json:"category,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
}

// JobDetailDTO adds viewer-specific flags to a listing
type JobDetailDTO struct {
	JobDTO
	HasApplied bool `json:"has_applied"`
	IsOwner    bool `json:"is_owner"`
}

// JobListResponse represents a paginated list of listings
type JobListResponse struct {
	Jobs []JobDTO `json:"jobs"`
	utils.PaginationResponse
}

// JobDraftDTO is an AI-suggested listing
type JobDraftDTO struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SuggestedBudget *float64 `json:"suggested_budget,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category)
	}
	return dtos
}

// ToJobDTO converts a JobListing model to JobDTO
func ToJobDTO(job models.JobListing) JobDTO {
	dto := JobDTO{
		ID:          job.ID,
		ClientID:    job.ClientID,
		Title:       job.Title,
		Description: job.Description,
		Budget:      job.Budget,
		Deadline:    job.Deadline,
		IsActive:    job.IsActive,
		CreatedAt:   job.CreatedAt,
		CompanyName: job.Client.CompanyName,
	}
	if job.Category != nil {
		category := ToCategoryDTO(*job.Category)
		dto.Category = &category
	}
	return dto
}

// ToJobDTOs converts a slice of listings
func ToJobDTOs(jobs []models.JobListing) []JobDTO {
	dtos := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		dtos[i] = ToJobDTO(job)
	}
	return dtos
}

// ToJobListResponse creates a paginated listing response
func ToJobListResponse(jobs []models.JobListing, params utils.PaginationParams, totalCount int64) JobListResponse {
	return JobListResponse{
		Jobs:               ToJobDTOs(jobs),
		PaginationResponse: utils.NewPaginationResponse(params, totalCount),
	}
}
