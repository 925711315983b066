package dto

import "github.com/nexusboard/nexusboard-api/internal/models"

// ChatTimestampLayout is the wire format for chat timestamps.
const ChatTimestampLayout = "2006-01-02 15:04:05"

// ChatMessageDTO represents a chat message in API responses
type ChatMessageDTO struct {
	ID         uint64  `json:"id"`
	Sender     string  `json:"sender"`
	SenderID   uint64  `json:"sender_id"`
	ReceiverID *uint64 `json:"receiver_id,omitempty"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
}

// ToChatMessageDTO converts a ChatMessage model to ChatMessageDTO. The
// sender name comes from the preloaded Sender relation.
func ToChatMessageDTO(msg models.ChatMessage) ChatMessageDTO {
	return ChatMessageDTO{
		ID:         msg.ID,
		Sender:     msg.Sender.Username,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Message:    msg.Message,
		Timestamp:  msg.Timestamp.Format(ChatTimestampLayout),
	}
}

// ToChatMessageDTOs converts a slice of ChatMessage models
func ToChatMessageDTOs(msgs []models.ChatMessage) []ChatMessageDTO {
	out := make([]ChatMessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = ToChatMessageDTO(m)
	}
	return out
}
