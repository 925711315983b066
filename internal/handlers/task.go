package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/dto"
	apierrors "github.com/nexusboard/nexusboard-api/internal/errors"
	"github.com/nexusboard/nexusboard-api/internal/middleware"
	"github.com/nexusboard/nexusboard-api/internal/models"
	"github.com/nexusboard/nexusboard-api/internal/services"
)

// TaskHandler coordinates the board pages and task mutations.
type TaskHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, authService *services.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authService: authService,
	}
}

// Dashboard returns the caller's three status columns, the team view,
// and the user roster.
func (h *TaskHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	board, err := h.taskService.ListBoard(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load tasks")
		return
	}

	teamTasks, err := h.taskService.ListTeamVisible(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load team tasks")
		return
	}

	members, err := h.authService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to load team members")
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{
		ToDo:        dto.ToTaskDTOs(board.ToDo),
		InProgress:  dto.ToTaskDTOs(board.InProgress),
		Done:        dto.ToTaskDTOs(board.Done),
		TeamTasks:   dto.ToTaskDTOs(teamTasks),
		TeamMembers: dto.ToUserDTOs(members),
	})
}

// TaskManagement returns only the caller's three status columns.
func (h *TaskHandler) TaskManagement(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	board, err := h.taskService.ListBoard(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load tasks")
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{
		ToDo:       dto.ToTaskDTOs(board.ToDo),
		InProgress: dto.ToTaskDTOs(board.InProgress),
		Done:       dto.ToTaskDTOs(board.Done),
	})
}

// AddTask creates a task for the caller and sends them back to the
// dashboard.
func (h *TaskHandler) AddTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddTaskRequest struct {
		Title       string `form:"title" json:"title"`
		Description string `form:"description" json:"description"`
		Status      string `form:"status" json:"status"`
		Priority    string `form:"priority" json:"priority"`
		TeamVisible *bool  `form:"team_visible" json:"team_visible"`
	}

	var req AddTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		TeamVisible: req.TeamVisible,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// EditTaskForm returns the task payload an edit form would render.
// Only the owner may load it.
func (h *TaskHandler) EditTaskForm(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskForOwner(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// EditTask applies owner-submitted changes to a task.
func (h *TaskHandler) EditTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	type EditTaskRequest struct {
		Title       *string `form:"title" json:"title"`
		Description *string `form:"description" json:"description"`
		Status      *string `form:"status" json:"status"`
		Priority    *string `form:"priority" json:"priority"`
		TeamVisible *bool   `form:"team_visible" json:"team_visible"`
	}

	var req EditTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		TeamVisible: req.TeamVisible,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	if _, err := h.taskService.UpdateTask(taskID, userID, input); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteTask removes an owned task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequestIDs(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// taskRequestIDs pulls the caller and the :id route param, answering
// the error response itself when either is missing.
func taskRequestIDs(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, "You are not authorized to modify this task")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
