package repository

import (
	"errors"

	"github.com/yukikurage/job-marketplace-api/internal/models"
)

var (
	// ErrDuplicateApplication is returned when the (job, freelancer) unique index rejects an insert.
	ErrDuplicateApplication = errors.New("application repository: freelancer already applied to this job")
	// ErrDuplicateInterview is returned when an application already has an interview row.
	ErrDuplicateInterview = errors.New("interview repository: application already has an interview")
	// ErrDuplicateUsername is returned when the username unique index rejects an insert.
	ErrDuplicateUsername = errors.New("user repository: username already exists")
	// ErrDuplicateCategory is returned when the category name unique index rejects an insert.
	ErrDuplicateCategory = errors.New("category repository: category already exists")
)

// UserRepository defines the interface for user and profile data access
type UserRepository interface {
	// CreateWithProfiles creates a user and, when set, its client and freelancer
	// profiles within a single transaction.
	CreateWithProfiles(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// ProfileRepository defines the interface for mutating role profiles
type ProfileRepository interface {
	// UpdateClient saves a client profile
	UpdateClient(client *models.Client) error

	// UpdateFreelancer saves a freelancer profile
	UpdateFreelancer(freelancer *models.Freelancer) error

	// ReplaceSkills swaps the freelancer's skill set, creating unknown skills
	ReplaceSkills(freelancer *models.Freelancer, skills []models.Skill) error

	// SaveVerification creates or updates the user's verification record
	SaveVerification(verification *models.Verification) error

	// FindVerificationByUserID finds a user's verification record
	FindVerificationByUserID(userID uint64) (*models.Verification, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	FindByID(id uint64) (*models.Category, error)
	List() ([]models.Category, error)

	// Delete removes a category and clears it from every listing
	Delete(id uint64) error
}

// JobFilter holds filtering options for listing jobs
type JobFilter struct {
	ActiveOnly bool
	CategoryID *uint64
	ClientID   *uint64
	Page       int
	PageSize   int
}

// JobRepository defines the interface for job listing data access
type JobRepository interface {
	Create(job *models.JobListing) error

	// FindByID finds a listing by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.JobListing, error)

	// List retrieves listings with filtering and pagination, newest first
	List(filter JobFilter) ([]models.JobListing, int64, error)

	Update(job *models.JobListing) error

	// Delete removes a listing with its applications and interviews
	Delete(id uint64) error
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create inserts an application, returning ErrDuplicateApplication when the
	// freelancer already applied to the job
	Create(app *models.Application) error

	// FindByID finds an application by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// ListByJob lists applications for a listing with freelancer and interview
	ListByJob(jobID uint64) ([]models.Application, error)

	// ListByFreelancer lists a freelancer's applications with job and interview
	ListByFreelancer(freelancerID uint64) ([]models.Application, error)

	// Exists reports whether the freelancer has applied to the job
	Exists(jobID, freelancerID uint64) (bool, error)

	// UpdateStatus sets the status and removes any interview when the new
	// status is not Approved, atomically
	UpdateStatus(app *models.Application, status models.ApplicationStatus) error
}

// InterviewRepository defines the interface for interview data access
type InterviewRepository interface {
	// Create inserts an interview, returning ErrDuplicateInterview when one exists
	Create(interview *models.Interview) error

	// FindByID finds an interview by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Interview, error)

	// FindByApplicationID finds the interview attached to an application
	FindByApplicationID(applicationID uint64) (*models.Interview, error)

	// Update saves the schedule fields of an existing interview
	Update(interview *models.Interview) error
}
