package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrNotOwner is returned when the acting user does not own the resource chain.
	// Handlers answer it exactly like a missing resource.
	ErrNotOwner        = errors.New("resource is not owned by the acting user")
	ErrNotClient       = errors.New("client profile required")
	ErrNotFreelancer   = errors.New("freelancer profile required")
	ErrNotAdmin        = errors.New("admin privileges required")
	ErrPrincipalAbsent = errors.New("acting user not found")
)

// Principal is the acting user with the ids of the profiles they hold.
type Principal struct {
	UserID       uint64
	ClientID     *uint64
	FreelancerID *uint64
	IsAdmin      bool
}

// NewPrincipal builds a principal from a user loaded with its profiles.
func NewPrincipal(user *models.User) Principal {
	p := Principal{UserID: user.ID, IsAdmin: user.IsAdmin}
	if user.IsClient && user.ClientProfile != nil {
		id := user.ClientProfile.ID
		p.ClientID = &id
	}
	if user.IsFreelancer && user.FreelancerProfile != nil {
		id := user.FreelancerProfile.ID
		p.FreelancerID = &id
	}
	return p
}

func (p Principal) IsClient() bool     { return p.ClientID != nil }
func (p Principal) IsFreelancer() bool { return p.FreelancerID != nil }

// OwnsJob reports whether the principal's client profile posted the listing.
func (p Principal) OwnsJob(job *models.JobListing) bool {
	return job != nil && p.ClientID != nil && job.ClientID == *p.ClientID
}

// OwnsApplication walks application -> listing -> client. The listing must be preloaded.
func (p Principal) OwnsApplication(app *models.Application) bool {
	return app != nil && app.Job.ID == app.JobID && p.OwnsJob(&app.Job)
}

// AppliedTo reports whether the principal's freelancer profile submitted the application.
func (p Principal) AppliedTo(app *models.Application) bool {
	return app != nil && p.FreelancerID != nil && app.FreelancerID == *p.FreelancerID
}

// OwnsInterview walks interview -> application -> listing -> client.
// Application.Job must be preloaded.
func (p Principal) OwnsInterview(interview *models.Interview) bool {
	return interview != nil &&
		interview.Application.ID == interview.ApplicationID &&
		p.OwnsApplication(&interview.Application)
}

// authorize turns an ownership predicate into ErrNotOwner.
func authorize(owns bool) error {
	if !owns {
		return ErrNotOwner
	}
	return nil
}

// PrincipalResolver loads the acting user's profiles.
type PrincipalResolver struct {
	userRepo repository.UserRepository
}

func NewPrincipalResolver(userRepo repository.UserRepository) *PrincipalResolver {
	return &PrincipalResolver{userRepo: userRepo}
}

// Resolve returns the principal for a session user id.
func (r *PrincipalResolver) Resolve(userID uint64) (Principal, error) {
	user, err := r.userRepo.FindByID(userID, "ClientProfile", "FreelancerProfile")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Principal{}, ErrPrincipalAbsent
		}
		return Principal{}, fmt.Errorf("failed to load acting user: %w", err)
	}
	return NewPrincipal(user), nil
}
