package repository

import (
	"errors"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInterviewRepository is a GORM implementation of InterviewRepository
type GormInterviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &GormInterviewRepository{db: db}
}

func (r *GormInterviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Omit(clause.Associations).Create(interview).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateInterview
		}
		return err
	}
	return nil
}

// FindByID finds an interview by ID with optional preloading
func (r *GormInterviewRepository) FindByID(id uint64, preload ...string) (*models.Interview, error) {
	var interview models.Interview
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&interview, id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *GormInterviewRepository) FindByApplicationID(applicationID uint64) (*models.Interview, error) {
	var interview models.Interview
	if err := r.db.Where("application_id = ?", applicationID).First(&interview).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

// Update writes only the schedule columns so the row keeps its id and status.
func (r *GormInterviewRepository) Update(interview *models.Interview) error {
	return r.db.Model(&models.Interview{}).
		Where("id = ?", interview.ID).
		Updates(map[string]interface{}{
			"date_time":        interview.DateTime,
			"link_or_location": interview.LinkOrLocation,
		}).Error
}
