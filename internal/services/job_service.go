package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound            = errors.New("job listing not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidBudget          = errors.New("budget must be greater than zero")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryNameRequired   = errors.New("category name is required")
	ErrCategoryExists         = errors.New("category already exists")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrBriefRequired          = errors.New("brief is required")
)

// JobService handles categories and job listings.
type JobService struct {
	jobRepo      repository.JobRepository
	categoryRepo repository.CategoryRepository
	appRepo      repository.ApplicationRepository
	aiService    *AIService
}

// NewJobService creates a new JobService. aiService may be nil.
func NewJobService(jobRepo repository.JobRepository, categoryRepo repository.CategoryRepository, appRepo repository.ApplicationRepository, aiService *AIService) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		appRepo:      appRepo,
		aiService:    aiService,
	}
}

// CreateJobInput represents input for posting a listing
type CreateJobInput struct {
	Title       string
	Description string
	Budget      float64
	Deadline    *time.Time
	CategoryID  *uint64
}

// CreateJob posts a listing on behalf of the principal's client profile.
func (s *JobService) CreateJob(principal Principal, input CreateJobInput) (*models.JobListing, error) {
	if !principal.IsClient() {
		return nil, ErrNotClient
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.Budget <= 0 {
		return nil, ErrInvalidBudget
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
	}

	job := &models.JobListing{
		ClientID:    *principal.ClientID,
		Title:       title,
		Description: input.Description,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		CategoryID:  input.CategoryID,
		IsActive:    true,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return s.GetJob(job.ID)
}

// ListJobsInput represents filters for the public listing
type ListJobsInput struct {
	CategoryID *uint64
	Page       int
	PageSize   int
}

// ListActiveJobs returns open listings, newest first.
func (s *JobService) ListActiveJobs(input ListJobsInput) ([]models.JobListing, int64, error) {
	jobs, total, err := s.jobRepo.List(repository.JobFilter{
		ActiveOnly: true,
		CategoryID: input.CategoryID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListClientJobs returns every listing posted by the principal's client profile.
func (s *JobService) ListClientJobs(principal Principal) ([]models.JobListing, error) {
	if !principal.IsClient() {
		return nil, ErrNotClient
	}

	jobs, _, err := s.jobRepo.List(repository.JobFilter{ClientID: principal.ClientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns a listing with its category and posting client.
func (s *JobService) GetJob(jobID uint64) (*models.JobListing, error) {
	job, err := s.jobRepo.FindByID(jobID, "Category", "Client")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return job, nil
}

// HasApplied reports whether the principal's freelancer profile applied to the listing.
func (s *JobService) HasApplied(principal Principal, jobID uint64) (bool, error) {
	if !principal.IsFreelancer() {
		return false, nil
	}
	exists, err := s.appRepo.Exists(jobID, *principal.FreelancerID)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

// CloseJob stops a listing from accepting applications.
func (s *JobService) CloseJob(principal Principal, jobID uint64) (*models.JobListing, error) {
	job, err := s.ownedJob(principal, jobID)
	if err != nil {
		return nil, err
	}

	job.IsActive = false
	if err := s.jobRepo.Update(job); err != nil {
		return nil, fmt.Errorf("failed to close job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a listing together with its applications and interviews.
func (s *JobService) DeleteJob(principal Principal, jobID uint64) error {
	if _, err := s.ownedJob(principal, jobID); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func (s *JobService) ownedJob(principal Principal, jobID uint64) (*models.JobListing, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if err := authorize(principal.OwnsJob(job)); err != nil {
		return nil, err
	}
	return job, nil
}

// ListCategories returns every category ordered by name.
func (s *JobService) ListCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category. Admin only.
func (s *JobService) CreateCategory(principal Principal, name string) (*models.Category, error) {
	if !principal.IsAdmin {
		return nil, ErrNotAdmin
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category; listings keep existing without one. Admin only.
func (s *JobService) DeleteCategory(principal Principal, categoryID uint64) error {
	if !principal.IsAdmin {
		return ErrNotAdmin
	}

	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// DraftJob asks the AI service for a listing draft from a short brief.
func (s *JobService) DraftJob(ctx context.Context, principal Principal, brief string) (*JobDraft, error) {
	if !principal.IsClient() {
		return nil, ErrNotClient
	}
	if strings.TrimSpace(brief) == "" {
		return nil, ErrBriefRequired
	}
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	draft, err := s.aiService.DraftJobListing(ctx, brief)
	if err != nil {
		return nil, fmt.Errorf("failed to draft job: %w", err)
	}
	return draft, nil
}
