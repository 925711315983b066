package models

import "time"

// ChatMessage is a single team chat entry. ReceiverID is optional
// display metadata; every message remains visible to the whole team.
type ChatMessage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	SenderID   uint64    `gorm:"not null;index" json:"sender_id"`
	ReceiverID *uint64   `json:"receiver_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Timestamp  time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	Sender   User  `gorm:"foreignKey:SenderID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"-"`
}
