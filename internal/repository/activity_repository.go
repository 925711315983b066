package repository

import (
	"github.com/nexusboard/nexusboard-api/internal/database"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends one entry
func (r *GormActivityRepository) Create(activity *models.UserActivity) error {
	return r.db.Create(activity).Error
}

// List returns entries newest-first
func (r *GormActivityRepository) List(params utils.PaginationParams) ([]models.UserActivity, error) {
	var activities []models.UserActivity
	err := r.db.
		Preload("User").
		Order("timestamp DESC").
		Scopes(database.Paginate(params)).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Count returns the total number of entries
func (r *GormActivityRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.UserActivity{}).Count(&count).Error
	return count, err
}
