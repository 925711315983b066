package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/dto"
	apierrors "github.com/nexusboard/nexusboard-api/internal/errors"
	"github.com/nexusboard/nexusboard-api/internal/services"
	"github.com/nexusboard/nexusboard-api/internal/utils"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	authService *services.AuthService
	taskService *services.TaskService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, taskService *services.TaskService) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		taskService: taskService,
	}
}

// Dashboard returns the non-admin user roster and the activity log,
// newest entries first. Admin gating happens in middleware.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	users, err := h.authService.ListNonAdminUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to load users")
		return
	}

	params := utils.GetPaginationParams(c)
	activities, err := h.taskService.ListActivities(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to load activity log")
		return
	}

	payload := gin.H{
		"users":      dto.ToUserDTOs(users),
		"activities": dto.ToActivityDTOs(activities),
	}
	if params.Requested {
		total, err := h.taskService.CountActivities()
		if err != nil {
			apierrors.InternalError(c, "Failed to load activity log")
			return
		}
		payload["pagination"] = utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		}
	}

	c.JSON(http.StatusOK, payload)
}
