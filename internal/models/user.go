package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsClient     bool      `gorm:"not null;default:false" json:"is_client"`
	IsFreelancer bool      `gorm:"not null;default:false" json:"is_freelancer"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	ClientProfile     *Client       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"client_profile,omitempty"`
	FreelancerProfile *Freelancer   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"freelancer_profile,omitempty"`
	Verification      *Verification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"verification,omitempty"`
}
