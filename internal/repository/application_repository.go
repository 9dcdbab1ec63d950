package repository

import (
	"errors"

	"github.com/yukikurage/job-marketplace-api/internal/database"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create inserts the application and lets the (job_id, freelancer_id) unique
// index decide whether it is a duplicate.
func (r *GormApplicationRepository) Create(app *models.Application) error {
	if err := r.db.Omit(clause.Associations).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// ListByJob lists applications for a listing, oldest first
func (r *GormApplicationRepository) ListByJob(jobID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("Freelancer").
		Preload("Freelancer.User").
		Preload("Interview").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByFreelancer lists a freelancer's applications, newest first
func (r *GormApplicationRepository) ListByFreelancer(freelancerID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("Job").
		Preload("Interview").
		Where("freelancer_id = ?", freelancerID).
		Scopes(database.NewestFirst("applications")).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Exists reports whether the freelancer has applied to the job
func (r *GormApplicationRepository) Exists(jobID, freelancerID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_id = ? AND freelancer_id = ?", jobID, freelancerID).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus writes the status column and, for any status other than
// Approved, removes the interview in the same transaction.
func (r *GormApplicationRepository) UpdateStatus(app *models.Application, status models.ApplicationStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Update("status", status).Error; err != nil {
			return err
		}

		if status != models.ApplicationStatusApproved {
			if err := tx.Where("application_id = ?", app.ID).Delete(&models.Interview{}).Error; err != nil {
				return err
			}
			app.Interview = nil
		}

		app.Status = status
		return nil
	})
}
