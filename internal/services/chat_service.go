package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/repository"
	"github.com/nexusboard/nexusboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotMessageSender = errors.New("only the sender can modify this message")
)

// ChatService handles team chat business logic
type ChatService struct {
	chatRepo repository.ChatRepository
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo repository.ChatRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
	}
}

// SendMessage stores a new message. A nil receiver makes it a
// broadcast visible to the whole team.
func (s *ChatService) SendMessage(senderID uint64, text string, receiverID *uint64) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	msg := &models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}

	if err := s.chatRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	// Reload with the sender so responses can carry the username.
	return s.chatRepo.FindByID(msg.ID, "Sender")
}

// ListMessages returns the chat history oldest-first. Addressed
// messages stay in the shared history; the receiver field is display
// metadata, not an access filter.
func (s *ChatService) ListMessages(params utils.PaginationParams) ([]models.ChatMessage, error) {
	msgs, err := s.chatRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// CountMessages returns the history size, for paginated reads.
func (s *ChatService) CountMessages() (int64, error) {
	count, err := s.chatRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// EditMessage replaces the text of a message the requester sent.
func (s *ChatService) EditMessage(messageID, requesterID uint64, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	msg, err := s.chatRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if msg.SenderID != requesterID {
		return nil, ErrNotMessageSender
	}

	msg.Message = text
	if err := s.chatRepo.Update(msg); err != nil {
		return nil, fmt.Errorf("failed to edit message: %w", err)
	}

	return msg, nil
}

// DeleteMessage removes a message the requester sent.
func (s *ChatService) DeleteMessage(messageID, requesterID uint64) error {
	msg, err := s.chatRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to find message: %w", err)
	}

	if msg.SenderID != requesterID {
		return ErrNotMessageSender
	}

	if err := s.chatRepo.Delete(messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
