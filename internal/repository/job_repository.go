package repository

import (
	"github.com/yukikurage/job-marketplace-api/internal/database"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job listing
func (r *GormJobRepository) Create(job *models.JobListing) error {
	return r.db.Omit(clause.Associations).Create(job).Error
}

// FindByID finds a job listing by ID with optional preloading
func (r *GormJobRepository) FindByID(id uint64, preload ...string) (*models.JobListing, error) {
	var job models.JobListing
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&job, id).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// List retrieves job listings with filtering and pagination
func (r *GormJobRepository) List(filter JobFilter) ([]models.JobListing, int64, error) {
	var jobs []models.JobListing

	query := r.db.Model(&models.JobListing{})

	if filter.ActiveOnly {
		query = query.Where("job_listings.is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("job_listings.category_id = ?", *filter.CategoryID)
	}
	if filter.ClientID != nil {
		query = query.Where("job_listings.client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Scopes(database.NewestFirst("job_listings"), database.Paginate(filter.Page, filter.PageSize)).
		Preload("Category").
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// Update updates a job listing
func (r *GormJobRepository) Update(job *models.JobListing) error {
	return r.db.Omit(clause.Associations).Save(job).Error
}

// Delete removes a listing, its applications and their interviews in a transaction
func (r *GormJobRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		applicationIDs := tx.Model(&models.Application{}).Select("id").Where("job_id = ?", id)

		if err := tx.Where("application_id IN (?)", applicationIDs).Delete(&models.Interview{}).Error; err != nil {
			return err
		}

		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.JobListing{}, id).Error
	})
}
