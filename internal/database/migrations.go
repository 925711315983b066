package database

import (
	"fmt"

	"github.com/nexusboard/nexusboard-api/internal/logging"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the four application tables and their
// secondary indexes.
func Migrate() error {
	logging.Logger.Info("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserActivity{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(DB); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	logging.Logger.Info("Database migrations completed")
	return nil
}

// AddIndexes creates query-path indexes that AutoMigrate does not
// derive from the model tags. Existing indexes are skipped.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		table   string
		columns string
	}{
		// Board columns filter by owner and status together.
		{&models.Task{}, "idx_tasks_user_status", "tasks", "user_id, status"},
		// Team view sorts visible tasks by recency.
		{&models.Task{}, "idx_tasks_updated_at", "tasks", "updated_at"},
		// Admin activity log reads newest-first.
		{&models.UserActivity{}, "idx_user_activities_timestamp", "user_activities", "timestamp"},
		// Chat history reads oldest-first.
		{&models.ChatMessage{}, "idx_chat_messages_timestamp", "chat_messages", "timestamp"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
