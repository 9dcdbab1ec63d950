package models

import "time"

type Client struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName string    `gorm:"type:varchar(200)" json:"company_name"`
	Location    string    `gorm:"type:varchar(200)" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User         `gorm:"foreignKey:UserID" json:"-"`
	Jobs []JobListing `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

type Freelancer struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	UserID          uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	PortfolioLink   string    `gorm:"type:varchar(500)" json:"portfolio_link"`
	ExperienceLevel string    `gorm:"type:varchar(50)" json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Skills       []Skill       `gorm:"many2many:freelancer_skills" json:"skills,omitempty"`
	Applications []Application `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE" json:"-"`
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyExpert       Proficiency = "Expert"
)

// Valid reports whether p is one of the known proficiency levels.
func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyExpert:
		return true
	}
	return false
}

type Skill struct {
	ID               uint64      `gorm:"primarykey" json:"id"`
	Name             string      `gorm:"type:varchar(100);not null;uniqueIndex:idx_skill_name_level" json:"name"`
	ProficiencyLevel Proficiency `gorm:"type:varchar(20);not null;uniqueIndex:idx_skill_name_level" json:"proficiency_level"`
}

type Verification struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	DocumentURL string    `gorm:"type:varchar(500)" json:"document_url"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
