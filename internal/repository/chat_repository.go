package repository

import (
	"github.com/nexusboard/nexusboard-api/internal/database"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/utils"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// Create stores a new message
func (r *GormChatRepository) Create(msg *models.ChatMessage) error {
	return r.db.Create(msg).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormChatRepository) FindByID(id uint64, preload ...string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&msg, id).Error; err != nil {
		return nil, err
	}

	return &msg, nil
}

// List returns the message history oldest-first
func (r *GormChatRepository) List(params utils.PaginationParams) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.
		Preload("Sender").
		Order("timestamp ASC").
		Scopes(database.Paginate(params)).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Count returns the total number of messages
func (r *GormChatRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMessage{}).Count(&count).Error
	return count, err
}

// Update saves an edited message
func (r *GormChatRepository) Update(msg *models.ChatMessage) error {
	return r.db.Save(msg).Error
}

// Delete removes a message
func (r *GormChatRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ChatMessage{}, id).Error
}
