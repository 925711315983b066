package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/dto"
	apierrors "github.com/nexusboard/nexusboard-api/internal/errors"
	"github.com/nexusboard/nexusboard-api/internal/middleware"
	"github.com/nexusboard/nexusboard-api/internal/services"
	"github.com/nexusboard/nexusboard-api/internal/utils"
)

// ChatHandler coordinates the team chat page and message mutations.
type ChatHandler struct {
	chatService *services.ChatService
	authService *services.AuthService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService, authService *services.AuthService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		authService: authService,
	}
}

// TeamChat returns the user roster and the full message history,
// oldest-first.
func (h *ChatHandler) TeamChat(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to load users")
		return
	}

	params := utils.GetPaginationParams(c)
	msgs, err := h.chatService.ListMessages(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to load messages")
		return
	}

	payload := gin.H{
		"users":    dto.ToUserDTOs(users),
		"messages": dto.ToChatMessageDTOs(msgs),
	}
	if params.Requested {
		total, err := h.chatService.CountMessages()
		if err != nil {
			apierrors.InternalError(c, "Failed to load messages")
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

// SendMessage posts a message. Omitting receiver_id makes it a
// broadcast.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not logged in")
		return
	}

	type SendMessageRequest struct {
		Message    string  `json:"message"`
		ReceiverID *uint64 `json:"receiver_id"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.chatService.SendMessage(userID, req.Message, req.ReceiverID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatMessageDTO(*msg))
}

// EditMessage replaces the text of a message the caller sent.
func (h *ChatHandler) EditMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not logged in")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	type EditMessageRequest struct {
		Message string `json:"message"`
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.chatService.EditMessage(messageID, userID, req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        msg.ID,
		"message":   msg.Message,
		"timestamp": msg.Timestamp.Format(dto.ChatTimestampLayout),
	})
}

// DeleteMessage removes a message the caller sent.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not logged in")
		return
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid message ID")
		return
	}

	if err := h.chatService.DeleteMessage(messageID, userID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		apierrors.BadRequest(c, "Message cannot be empty")
	case errors.Is(err, services.ErrNotMessageSender):
		apierrors.Forbidden(c, "You are not authorized to modify this message")
	case errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
