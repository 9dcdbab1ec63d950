package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/job-marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the user row fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateClientProfile is returned when creating the client profile fails inside the registration transaction.
	ErrCreateClientProfile = errors.New("user repository: create client profile failed")
	// ErrCreateFreelancerProfile is returned when creating the freelancer profile fails inside the registration transaction.
	ErrCreateFreelancerProfile = errors.New("user repository: create freelancer profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfiles creates the user and the profiles implied by its role flags atomically.
func (r *GormUserRepository) CreateWithProfiles(user *models.User) error {
	client := user.ClientProfile
	freelancer := user.FreelancerProfile

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ClientProfile", "FreelancerProfile", "Verification").Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		if client != nil {
			client.UserID = user.ID
			if err := tx.Create(client).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateClientProfile, err)
			}
		}

		if freelancer != nil {
			freelancer.UserID = user.ID
			if err := tx.Omit("Skills").Create(freelancer).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateFreelancerProfile, err)
			}
		}

		return nil
	})
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
