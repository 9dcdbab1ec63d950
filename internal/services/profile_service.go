package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoProfileToUpdate = errors.New("user has no client or freelancer profile")
)

// ProfileService updates the acting user's own role profiles.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// SkillInput names a skill and the freelancer's proficiency in it.
type SkillInput struct {
	Name             string
	ProficiencyLevel models.Proficiency
}

// UpdateProfileInput carries optional fields; nil leaves the column unchanged.
// Client fields are ignored for users without a client profile and likewise
// for freelancer fields.
type UpdateProfileInput struct {
	CompanyName     *string
	Location        *string
	Description     *string
	PortfolioLink   *string
	ExperienceLevel *string
	Skills          []SkillInput
	ReplaceSkills   bool
}

// UpdateProfile mutates only the caller's own profiles.
func (s *ProfileService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID, "ClientProfile", "FreelancerProfile")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	client := user.ClientProfile
	freelancer := user.FreelancerProfile
	if client == nil && freelancer == nil {
		return nil, ErrNoProfileToUpdate
	}

	if input.PortfolioLink != nil && *input.PortfolioLink != "" {
		if err := validateHTTPURL(*input.PortfolioLink); err != nil {
			return nil, newValidationError("portfolio_link", err.Error())
		}
	}

	skills := make([]models.Skill, 0, len(input.Skills))
	for _, s := range input.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, newValidationError("skills", "skill name is required")
		}
		if !s.ProficiencyLevel.Valid() {
			return nil, newValidationError("skills", fmt.Sprintf("unknown proficiency level %q", s.ProficiencyLevel))
		}
		skills = append(skills, models.Skill{Name: name, ProficiencyLevel: s.ProficiencyLevel})
	}

	if client != nil {
		if input.CompanyName != nil {
			client.CompanyName = strings.TrimSpace(*input.CompanyName)
		}
		if input.Location != nil {
			client.Location = strings.TrimSpace(*input.Location)
		}
		if input.Description != nil {
			client.Description = *input.Description
		}
		if err := s.profileRepo.UpdateClient(client); err != nil {
			return nil, fmt.Errorf("failed to update client profile: %w", err)
		}
	}

	if freelancer != nil {
		if input.PortfolioLink != nil {
			freelancer.PortfolioLink = strings.TrimSpace(*input.PortfolioLink)
		}
		if input.ExperienceLevel != nil {
			freelancer.ExperienceLevel = strings.TrimSpace(*input.ExperienceLevel)
		}
		if err := s.profileRepo.UpdateFreelancer(freelancer); err != nil {
			return nil, fmt.Errorf("failed to update freelancer profile: %w", err)
		}
		if input.ReplaceSkills {
			if err := s.profileRepo.ReplaceSkills(freelancer, skills); err != nil {
				return nil, fmt.Errorf("failed to update skills: %w", err)
			}
		}
	}

	return s.userRepo.FindByID(userID, "ClientProfile", "FreelancerProfile", "FreelancerProfile.Skills", "Verification")
}

// SubmitVerification records a document for review. Resubmitting resets the
// verified flag.
func (s *ProfileService) SubmitVerification(userID uint64, documentURL string) (*models.Verification, error) {
	documentURL = strings.TrimSpace(documentURL)
	if err := validateHTTPURL(documentURL); err != nil {
		return nil, newValidationError("document_url", err.Error())
	}

	verification, err := s.profileRepo.FindVerificationByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find verification: %w", err)
		}
		verification = &models.Verification{UserID: userID}
	}

	verification.DocumentURL = documentURL
	verification.IsVerified = false

	if err := s.profileRepo.SaveVerification(verification); err != nil {
		return nil, fmt.Errorf("failed to save verification: %w", err)
	}

	return verification, nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}
