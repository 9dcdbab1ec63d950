package models

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// ErrInvalidStatusTarget is returned for any requested status other than Approved or Rejected.
var ErrInvalidStatusTarget = errors.New("status must be Approved or Rejected")

// ParseTransitionTarget accepts only the literal strings a client may move an
// application to. Pending is never a valid target.
func ParseTransitionTarget(value string) (ApplicationStatus, error) {
	switch ApplicationStatus(value) {
	case ApplicationStatusApproved:
		return ApplicationStatusApproved, nil
	case ApplicationStatusRejected:
		return ApplicationStatusRejected, nil
	default:
		return "", ErrInvalidStatusTarget
	}
}

// CanTransitionTo reports whether an application in status s may move to target.
// Approved and Rejected may be corrected into each other; staying put is allowed.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if target == ApplicationStatusPending {
		return s == ApplicationStatusPending
	}
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return target == ApplicationStatusApproved || target == ApplicationStatusRejected
	}
	return false
}

type Application struct {
	ID              uint64            `gorm:"primarykey" json:"id"`
	JobID           uint64            `gorm:"not null;uniqueIndex:idx_application_job_freelancer" json:"job_id"`
	FreelancerID    uint64            `gorm:"not null;uniqueIndex:idx_application_job_freelancer;index" json:"freelancer_id"`
	ProposalText    string            `gorm:"type:text;not null" json:"proposal_text"`
	ExpectedPayment float64           `gorm:"type:decimal(10,2);not null" json:"expected_payment"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relations
	Job        JobListing `gorm:"foreignKey:JobID" json:"-"`
	Freelancer Freelancer `gorm:"foreignKey:FreelancerID" json:"-"`
	Interview  *Interview `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"interview,omitempty"`
}
