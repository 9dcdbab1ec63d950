package repository

import (
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) UpdateClient(client *models.Client) error {
	return r.db.Omit(clause.Associations).Save(client).Error
}

func (r *GormProfileRepository) UpdateFreelancer(freelancer *models.Freelancer) error {
	return r.db.Omit(clause.Associations).Save(freelancer).Error
}

// ReplaceSkills resolves each skill by (name, proficiency) and replaces the
// freelancer's association in one transaction.
func (r *GormProfileRepository) ReplaceSkills(freelancer *models.Freelancer, skills []models.Skill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		resolved := make([]models.Skill, 0, len(skills))
		for _, s := range skills {
			skill := models.Skill{Name: s.Name, ProficiencyLevel: s.ProficiencyLevel}
			if err := tx.Where(&skill).FirstOrCreate(&skill).Error; err != nil {
				return err
			}
			resolved = append(resolved, skill)
		}

		if err := tx.Model(freelancer).Association("Skills").Replace(resolved); err != nil {
			return err
		}
		freelancer.Skills = resolved
		return nil
	})
}

func (r *GormProfileRepository) SaveVerification(verification *models.Verification) error {
	return r.db.Save(verification).Error
}

func (r *GormProfileRepository) FindVerificationByUserID(userID uint64) (*models.Verification, error) {
	var verification models.Verification
	if err := r.db.Where("user_id = ?", userID).First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}
