package repository

import (
	"github.com/nexusboard/nexusboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByOwnerAndStatus returns one board column in insertion order
func (r *GormTaskRepository) ListByOwnerAndStatus(ownerID uint64, status models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ? AND status = ?", ownerID, status).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTeamVisible returns other users' team-visible tasks, most
// recently updated first
func (r *GormTaskRepository) ListTeamVisible(excludeOwnerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Owner").
		Where("user_id <> ? AND team_visible = ?", excludeOwnerID, true).
		Order("updated_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateWithActivity inserts a task and its "added" entry in one
// transaction so the log never diverges from the task table.
func (r *GormTaskRepository) CreateWithActivity(task *models.Task, activity *models.UserActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}

		activity.TaskID = &task.ID
		activity.TaskTitle = task.Title

		return tx.Create(activity).Error
	})
}

// UpdateWithActivity saves a task and its "modified" entry in one
// transaction.
func (r *GormTaskRepository) UpdateWithActivity(task *models.Task, activity *models.UserActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		activity.TaskID = &task.ID
		activity.TaskTitle = task.Title

		return tx.Create(activity).Error
	})
}

// DeleteWithActivity removes a task and inserts its "deleted" entry in
// one transaction. The entry keeps only the title snapshot; the task id
// is gone once the row is removed.
func (r *GormTaskRepository) DeleteWithActivity(task *models.Task, activity *models.UserActivity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, task.ID).Error; err != nil {
			return err
		}

		activity.TaskTitle = task.Title

		return tx.Create(activity).Error
	})
}
