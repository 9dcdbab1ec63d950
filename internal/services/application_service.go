package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("freelancer already applied to this job")
	ErrJobClosed           = errors.New("job listing is no longer accepting applications")
	ErrOwnJob              = errors.New("cannot apply to your own job listing")
	ErrProposalRequired    = errors.New("proposal text is required")
	ErrInvalidPayment      = errors.New("expected payment must be greater than zero")
	ErrInvalidTransition   = errors.New("application cannot move to the requested status")
)

// ApplicationService drives the application review workflow.
type ApplicationService struct {
	appRepo repository.ApplicationRepository
	jobRepo repository.JobRepository
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

// ApplyInput represents a freelancer's proposal
type ApplyInput struct {
	JobID           uint64
	ProposalText    string
	ExpectedPayment float64
}

// Apply submits an application. The (job, freelancer) unique index is the only
// duplicate guard.
func (s *ApplicationService) Apply(principal Principal, input ApplyInput) (*models.Application, error) {
	if !principal.IsFreelancer() {
		return nil, ErrNotFreelancer
	}
	if strings.TrimSpace(input.ProposalText) == "" {
		return nil, ErrProposalRequired
	}
	if input.ExpectedPayment <= 0 {
		return nil, ErrInvalidPayment
	}

	job, err := s.jobRepo.FindByID(input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if !job.IsActive {
		return nil, ErrJobClosed
	}
	if principal.OwnsJob(job) {
		return nil, ErrOwnJob
	}

	app := &models.Application{
		JobID:           job.ID,
		FreelancerID:    *principal.FreelancerID,
		ProposalText:    input.ProposalText,
		ExpectedPayment: input.ExpectedPayment,
		Status:          models.ApplicationStatusPending,
	}

	if err := s.appRepo.Create(app); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return app, nil
}

// ListForJob returns the applications on a listing owned by the principal.
func (s *ApplicationService) ListForJob(principal Principal, jobID uint64) (*models.JobListing, []models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, fmt.Errorf("failed to find job: %w", err)
	}

	if err := authorize(principal.OwnsJob(job)); err != nil {
		return nil, nil, err
	}

	apps, err := s.appRepo.ListByJob(jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return job, apps, nil
}

// ListForFreelancer returns the principal's own applications.
func (s *ApplicationService) ListForFreelancer(principal Principal) ([]models.Application, error) {
	if !principal.IsFreelancer() {
		return nil, ErrNotFreelancer
	}

	apps, err := s.appRepo.ListByFreelancer(*principal.FreelancerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to Approved or Rejected. Only the client
// owning the listing may do so; the row is untouched on any error.
func (s *ApplicationService) UpdateStatus(principal Principal, applicationID uint64, rawStatus string) (*models.Application, error) {
	target, err := models.ParseTransitionTarget(rawStatus)
	if err != nil {
		return nil, err
	}

	app, err := s.findApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal.OwnsApplication(app)); err != nil {
		return nil, err
	}

	if !app.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}
	if app.Status == target {
		return app, nil
	}

	if err := s.appRepo.UpdateStatus(app, target); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	return app, nil
}

func (s *ApplicationService) findApplication(id uint64) (*models.Application, error) {
	app, err := s.appRepo.FindByID(id, "Job", "Interview")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}
