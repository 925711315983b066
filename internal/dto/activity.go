package dto

import (
	"time"

	"github.com/nexusboard/nexusboard-api/internal/models"
)

// ActivityDTO represents an activity log entry in API responses
type ActivityDTO struct {
	ID           uint64              `json:"id"`
	UserID       uint64              `json:"user_id"`
	Username     string              `json:"username,omitempty"`
	ActivityType models.ActivityType `json:"activity_type"`
	TaskID       *uint64             `json:"task_id"`
	TaskTitle    string              `json:"task_title"`
	Timestamp    time.Time           `json:"timestamp"`
}

// ToActivityDTO converts a UserActivity model to ActivityDTO
func ToActivityDTO(activity models.UserActivity) ActivityDTO {
	return ActivityDTO{
		ID:           activity.ID,
		UserID:       activity.UserID,
		Username:     activity.User.Username,
		ActivityType: activity.ActivityType,
		TaskID:       activity.TaskID,
		TaskTitle:    activity.TaskTitle,
		Timestamp:    activity.Timestamp,
	}
}

// ToActivityDTOs converts a slice of UserActivity models
func ToActivityDTOs(activities []models.UserActivity) []ActivityDTO {
	out := make([]ActivityDTO, len(activities))
	for i, a := range activities {
		out[i] = ToActivityDTO(a)
	}
	return out
}
