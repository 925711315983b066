package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks            []Task         `gorm:"foreignKey:UserID" json:"-"`
	Activities       []UserActivity `gorm:"foreignKey:UserID" json:"-"`
	SentMessages     []ChatMessage  `gorm:"foreignKey:SenderID" json:"-"`
	ReceivedMessages []ChatMessage  `gorm:"foreignKey:ReceiverID" json:"-"`
}
