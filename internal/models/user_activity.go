package models

import "time"

type ActivityType string

const (
	ActivityAdded    ActivityType = "added"
	ActivityModified ActivityType = "modified"
	ActivityDeleted  ActivityType = "deleted"
)

// UserActivity records a task mutation for the admin audit trail. The
// task title is snapshotted so the entry stays readable after the task
// itself is deleted, in which case TaskID is nil.
type UserActivity struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	UserID       uint64       `gorm:"not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(20);not null" json:"activity_type"`
	TaskID       *uint64      `json:"task_id"`
	TaskTitle    string       `gorm:"type:varchar(100)" json:"task_title"`
	Timestamp    time.Time    `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
