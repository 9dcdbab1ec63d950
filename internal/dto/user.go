package dto

import (
	"github.com/yukikurage/job-marketplace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	IsClient     bool   `json:"is_client"`
	IsFreelancer bool   `json:"is_freelancer"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

// ClientDTO represents a client profile
type ClientDTO struct {
	ID          uint64 `json:"id"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// SkillDTO represents a freelancer skill
type SkillDTO struct {
	Name             string             `json:"name"`
	ProficiencyLevel models.Proficiency `json:"proficiency_level"`
}

// FreelancerDTO represents a freelancer profile
type FreelancerDTO struct {
	ID              uint64     `json:"id"`
	Username        string     `json:"username,omitempty"`
	PortfolioLink   string     `json:"portfolio_link"`
	ExperienceLevel string     `json:"experience_level"`
	Skills          []SkillDTO `json:"skills,omitempty"`
}

// VerificationDTO represents the state of a submitted verification document
type VerificationDTO struct {
	DocumentURL string `json:"document_url"`
	IsVerified  bool   `json:"is_verified"`
}

// MeDTO is the current user with every profile attached
type MeDTO struct {
	UserDTO
	Client       *ClientDTO       `json:"client_profile,omitempty"`
	Freelancer   *FreelancerDTO   `json:"freelancer_profile,omitempty"`
	Verification *VerificationDTO `json:"verification,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		IsClient:     user.IsClient,
		IsFreelancer: user.IsFreelancer,
		IsAdmin:      user.IsAdmin,
	}
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:          client.ID,
		CompanyName: client.CompanyName,
		Location:    client.Location,
		Description: client.Description,
	}
}

// ToFreelancerDTO converts a Freelancer model to FreelancerDTO. The username is
// filled in only when the User relation was preloaded.
func ToFreelancerDTO(freelancer models.Freelancer) FreelancerDTO {
	dto := FreelancerDTO{
		ID:              freelancer.ID,
		Username:        freelancer.User.Username,
		PortfolioLink:   freelancer.PortfolioLink,
		ExperienceLevel: freelancer.ExperienceLevel,
	}
	for _, skill := range freelancer.Skills {
		dto.Skills = append(dto.Skills, SkillDTO{Name: skill.Name, ProficiencyLevel: skill.ProficiencyLevel})
	}
	return dto
}

// ToMeDTO converts a fully preloaded user
func ToMeDTO(user models.User) MeDTO {
	me := MeDTO{UserDTO: ToUserDTO(user)}
	if user.ClientProfile != nil {
		client := ToClientDTO(*user.ClientProfile)
		me.Client = &client
	}
	if user.FreelancerProfile != nil {
		freelancer := ToFreelancerDTO(*user.FreelancerProfile)
		me.Freelancer = &freelancer
	}
	if user.Verification != nil {
		me.Verification = ToVerificationDTO(*user.Verification)
	}
	return me
}

// ToVerificationDTO converts a Verification model
func ToVerificationDTO(v models.Verification) *VerificationDTO {
	return &VerificationDTO{
		DocumentURL: v.DocumentURL,
		IsVerified:  v.IsVerified,
	}
}
