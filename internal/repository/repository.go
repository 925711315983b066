package repository

import (
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// UpdatePassword overwrites a user's password hash
	UpdatePassword(userID uint64, passwordHash string) error

	// List returns all users
	List() ([]models.User, error)

	// ListNonAdmin returns all users without the admin flag
	ListNonAdmin() ([]models.User, error)
}

// TaskRepository defines the interface for task data access. Mutations
// take the matching activity entry and commit both in one transaction.
type TaskRepository interface {
	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByOwnerAndStatus returns one board column in insertion order
	ListByOwnerAndStatus(ownerID uint64, status models.TaskStatus) ([]models.Task, error)

	// ListTeamVisible returns other users' team-visible tasks,
	// most recently updated first
	ListTeamVisible(excludeOwnerID uint64) ([]models.Task, error)

	// CreateWithActivity inserts a task and its "added" entry
	CreateWithActivity(task *models.Task, activity *models.UserActivity) error

	// UpdateWithActivity saves a task and its "modified" entry
	UpdateWithActivity(task *models.Task, activity *models.UserActivity) error

	// DeleteWithActivity removes a task and inserts its "deleted" entry
	DeleteWithActivity(task *models.Task, activity *models.UserActivity) error
}

// ActivityRepository defines the interface for the append-only
// activity log
type ActivityRepository interface {
	// Create appends one entry
	Create(activity *models.UserActivity) error

	// List returns entries newest-first
	List(params utils.PaginationParams) ([]models.UserActivity, error)

	// Count returns the total number of entries
	Count() (int64, error)
}

// ChatRepository defines the interface for chat message data access
type ChatRepository interface {
	// Create stores a new message
	Create(msg *models.ChatMessage) error

	// FindByID finds a message by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.ChatMessage, error)

	// List returns the message history oldest-first
	List(params utils.PaginationParams) ([]models.ChatMessage, error)

	// Count returns the total number of messages
	Count() (int64, error)

	// Update saves an edited message
	Update(msg *models.ChatMessage) error

	// Delete removes a message
	Delete(id uint64) error
}
