package api

import (
	"errors"
	"net/http"

	"kennedy-digital-arts/backend/internal/registry"
	"kennedy-digital-arts/backend/internal/service"
	"kennedy-digital-arts/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the REST chat surface. The websocket hub covers the
// realtime path; these endpoints serve history and one-shot turns.
type ChatHandler struct {
	chat   *service.ChatService
	logger *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// SendMessageRequest is the payload for a one-shot chat turn.
type SendMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Character string `json:"character" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// SendMessage runs a chat turn and returns the assistant's reply.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	msg, err := h.chat.SendMessage(c.Request.Context(), req.SessionID, req.Character, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		case errors.Is(err, registry.ErrCharacterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		case errors.Is(err, service.ErrStaleResponse):
			// A newer turn superseded this one; nothing to return.
			c.JSON(http.StatusConflict, gin.H{"error": "A newer message superseded this turn"})
		default:
			h.logger.Error("Chat turn failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// GetSessionMessages returns the recent history of a session.
func (h *ChatHandler) GetSessionMessages(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	messages, err := h.chat.History(sessionID)
	if err != nil {
		h.logger.Error("Failed to load session history", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}
