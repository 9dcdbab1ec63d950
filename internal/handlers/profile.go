package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

// ProfileHandler serves profile edits and verification requests.
type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// UpdateProfile edits the current user's client and freelancer profiles.
// Sending "skills" (even empty) replaces the freelancer's skill set.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	type SkillRequest struct {
		Name             string `json:"name"`
		ProficiencyLevel string `json:"proficiency_level"`
	}
	type UpdateProfileRequest struct {
		CompanyName     *string         `json:"company_name"`
		Location        *string         `json:"location"`
		Description     *string         `json:"description"`
		PortfolioLink   *string         `json:"portfolio_link"`
		ExperienceLevel *string         `json:"experience_level"`
		Skills          *[]SkillRequest `json:"skills"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProfileInput{
		CompanyName:     req.CompanyName,
		Location:        req.Location,
		Description:     req.Description,
		PortfolioLink:   req.PortfolioLink,
		ExperienceLevel: req.ExperienceLevel,
	}
	if req.Skills != nil {
		input.ReplaceSkills = true
		for _, skill := range *req.Skills {
			input.Skills = append(input.Skills, services.SkillInput{
				Name:             skill.Name,
				ProficiencyLevel: models.Proficiency(skill.ProficiencyLevel),
			})
		}
	}

	user, err := h.profileService.UpdateProfile(userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMeDTO(*user))
}

// SubmitVerification records a verification document URL for review.
func (h *ProfileHandler) SubmitVerification(c *gin.Context) {
	type VerificationRequest struct {
		DocumentURL string `json:"document_url" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	verification, err := h.profileService.SubmitVerification(userID, req.DocumentURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVerificationDTO(*verification))
}
