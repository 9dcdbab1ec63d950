package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInterviewNotFound      = errors.New("interview not found")
	ErrInterviewExists        = errors.New("application already has an interview; reschedule it instead")
	ErrApplicationNotApproved = errors.New("interviews can only be scheduled for approved applications")
)

// InterviewService schedules interviews for approved applications.
type InterviewService struct {
	interviewRepo repository.InterviewRepository
	appRepo       repository.ApplicationRepository
}

// NewInterviewService creates a new InterviewService
func NewInterviewService(interviewRepo repository.InterviewRepository, appRepo repository.ApplicationRepository) *InterviewService {
	return &InterviewService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
	}
}

// ScheduleInput is the form a client submits to schedule or reschedule.
// Platform only selects the domain the link is checked against.
type ScheduleInput struct {
	DateTime time.Time
	Platform string
	Link     string
}

// validate returns the link to persist or a field-level ValidationError.
func (in ScheduleInput) validate() (string, error) {
	if in.DateTime.IsZero() {
		return "", newValidationError("date_time", "date and time are required")
	}

	domain, ok := models.MeetingPlatform(in.Platform).Domain()
	if !ok {
		return "", newValidationError("platform", fmt.Sprintf("unsupported platform %q", in.Platform))
	}

	link := strings.TrimSpace(in.Link)
	if err := validateHTTPURL(link); err != nil {
		return "", newValidationError("link", err.Error())
	}
	if !strings.Contains(strings.ToLower(link), domain) {
		return "", newValidationError("link", fmt.Sprintf("%s links must contain %s", in.Platform, domain))
	}

	return link, nil
}

// Schedule creates the interview for an approved application owned by the principal.
func (s *InterviewService) Schedule(principal Principal, applicationID uint64, input ScheduleInput) (*models.Interview, error) {
	app, err := s.appRepo.FindByID(applicationID, "Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if err := authorize(principal.OwnsApplication(app)); err != nil {
		return nil, err
	}

	if app.Status != models.ApplicationStatusApproved {
		return nil, ErrApplicationNotApproved
	}

	link, err := input.validate()
	if err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ApplicationID:  app.ID,
		DateTime:       input.DateTime,
		LinkOrLocation: link,
		Status:         models.InterviewStatusScheduled,
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		if errors.Is(err, repository.ErrDuplicateInterview) {
			return nil, ErrInterviewExists
		}
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return interview, nil
}

// Reschedule updates date and link of an existing interview in place.
func (s *InterviewService) Reschedule(principal Principal, interviewID uint64, input ScheduleInput) (*models.Interview, error) {
	interview, err := s.findInterview(interviewID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal.OwnsInterview(interview)); err != nil {
		return nil, err
	}

	link, err := input.validate()
	if err != nil {
		return nil, err
	}

	interview.DateTime = input.DateTime
	interview.LinkOrLocation = link

	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}

	return interview, nil
}

// GetInterview returns an interview to the owning client or the applicant.
func (s *InterviewService) GetInterview(principal Principal, interviewID uint64) (*models.Interview, error) {
	interview, err := s.findInterview(interviewID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal.OwnsInterview(interview) || principal.AppliedTo(&interview.Application)); err != nil {
		return nil, err
	}

	return interview, nil
}

func (s *InterviewService) findInterview(id uint64) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(id, "Application", "Application.Job")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return interview, nil
}
