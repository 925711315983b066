package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nexusboard/nexusboard-api/internal/constants"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/repository"
	"github.com/nexusboard/nexusboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotTaskOwner    = errors.New("only the task owner can perform this action")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title too long")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, activityRepo repository.ActivityRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
	}
}

// Board holds the owner's three status columns.
type Board struct {
	ToDo       []models.Task
	InProgress []models.Task
	Done       []models.Task
}

// ListBoard returns the owner's tasks grouped by status, each column in
// insertion order.
func (s *TaskService) ListBoard(ownerID uint64) (*Board, error) {
	board := &Board{}

	columns := []struct {
		status models.TaskStatus
		dest   *[]models.Task
	}{
		{models.TaskStatusTodo, &board.ToDo},
		{models.TaskStatusInProgress, &board.InProgress},
		{models.TaskStatusDone, &board.Done},
	}

	for _, col := range columns {
		tasks, err := s.taskRepo.ListByOwnerAndStatus(ownerID, col.status)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s tasks: %w", col.status, err)
		}
		*col.dest = tasks
	}

	return board, nil
}

// ListTeamVisible returns other users' team-visible tasks for the team
// view, most recently updated first.
func (s *TaskService) ListTeamVisible(ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListTeamVisible(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID     uint64
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	TeamVisible *bool
}

// CreateTask creates a task and its "added" activity entry in a single
// transaction.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	teamVisible := true
	if input.TeamVisible != nil {
		teamVisible = *input.TeamVisible
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		TeamVisible: teamVisible,
		UserID:      input.OwnerID,
	}

	activity := &models.UserActivity{
		UserID:       input.OwnerID,
		ActivityType: models.ActivityAdded,
	}

	if err := s.taskRepo.CreateWithActivity(task, activity); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	TeamVisible *bool
}

// GetTaskForOwner loads a task and verifies ownership.
func (s *TaskService) GetTaskForOwner(taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.UserID != ownerID {
		return nil, ErrNotTaskOwner
	}

	return task, nil
}

// UpdateTask applies field changes to an owned task and writes the
// "modified" activity entry in the same transaction.
func (s *TaskService) UpdateTask(taskID, ownerID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTaskForOwner(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		if len(title) > constants.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.TeamVisible != nil {
		task.TeamVisible = *input.TeamVisible
	}

	activity := &models.UserActivity{
		UserID:       ownerID,
		ActivityType: models.ActivityModified,
	}

	if err := s.taskRepo.UpdateWithActivity(task, activity); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes an owned task and writes the "deleted" activity
// entry, keeping the title snapshot, in the same transaction.
func (s *TaskService) DeleteTask(taskID, ownerID uint64) error {
	task, err := s.GetTaskForOwner(taskID, ownerID)
	if err != nil {
		return err
	}

	activity := &models.UserActivity{
		UserID:       ownerID,
		ActivityType: models.ActivityDeleted,
	}

	if err := s.taskRepo.DeleteWithActivity(task, activity); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListActivities returns the activity log newest-first for the admin
// dashboard.
func (s *TaskService) ListActivities(params utils.PaginationParams) ([]models.UserActivity, error) {
	activities, err := s.activityRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// CountActivities returns the activity log size, for paginated reads.
func (s *TaskService) CountActivities() (int64, error) {
	count, err := s.activityRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}
