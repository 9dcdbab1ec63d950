package dto

import (
	"time"

	"github.com/yukikurage/job-marketplace-api/internal/models"
)

// InterviewDTO represents an interview in API responses
type InterviewDTO struct {
	ID             uint64    `json:"id"`
	ApplicationID  uint64    `json:"application_id"`
	DateTime       time.Time `json:"date_time"`
	LinkOrLocation string    `json:"link_or_location"`
	Status         string    `json:"status"`
}

// ApplicationDTO represents an application in API responses
type ApplicationDTO struct {
	ID              uint64                   `json:"id"`
	JobID           uint64                   `json:"job_id"`
	FreelancerID    uint64                   `json:"freelancer_id"`
	ProposalText    string                   `json:"proposal_text"`
	ExpectedPayment float64                  `json:"expected_payment"`
	Status          models.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
	Freelancer      *FreelancerDTO           `json:"freelancer,omitempty"`
	Job             *JobDTO                  `json:"job,omitempty"`
	Interview       *InterviewDTO            `json:"interview,omitempty"`
}

// StatusUpdateResponse is returned after a status transition. Next points at
// the follow-up page for the new status.
type StatusUpdateResponse struct {
	Application ApplicationDTO `json:"application"`
	Next        string         `json:"next"`
}

// JobApplicationsResponse lists the applications on one listing
type JobApplicationsResponse struct {
	Job          JobDTO           `json:"job"`
	Applications []ApplicationDTO `json:"applications"`
}

// ToInterviewDTO converts an Interview model to InterviewDTO
func ToInterviewDTO(interview models.Interview) InterviewDTO {
	return InterviewDTO{
		ID:             interview.ID,
		ApplicationID:  interview.ApplicationID,
		DateTime:       interview.DateTime,
		LinkOrLocation: interview.LinkOrLocation,
		Status:         interview.Status,
	}
}

// ToApplicationDTO converts an Application model. Relations are included
// only when they were preloaded.
func ToApplicationDTO(app models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:              app.ID,
		JobID:           app.JobID,
		FreelancerID:    app.FreelancerID,
		ProposalText:    app.ProposalText,
		ExpectedPayment: app.ExpectedPayment,
		Status:          app.Status,
		CreatedAt:       app.CreatedAt,
	}
	if app.Freelancer.ID != 0 {
		freelancer := ToFreelancerDTO(app.Freelancer)
		dto.Freelancer = &freelancer
	}
	if app.Job.ID != 0 {
		job := ToJobDTO(app.Job)
		dto.Job = &job
	}
	if app.Interview != nil {
		interview := ToInterviewDTO(*app.Interview)
		dto.Interview = &interview
	}
	return dto
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.Application) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		dtos[i] = ToApplicationDTO(app)
	}
	return dtos
}
