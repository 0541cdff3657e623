package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mortgagemind/internal/database/zep"
	"mortgagemind/internal/memory/service"
	"mortgagemind/internal/models"
)

// Handler bundles the HTTP endpoint handlers of the memory service.
type Handler struct {
	service *service.MemoryService
}

// NewHandler creates a new Handler instance.
func NewHandler(s *service.MemoryService) *Handler {
	return &Handler{service: s}
}

// GetProfile handles GET /memory/profile. A user the store knows nothing
// about gets the default empty profile, not an error.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, zep.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": zep.ErrNotConfigured.Error()})
			return
		}
		// The read path degrades inside the gateway; anything else that
		// reaches here still must not break the conversation.
		c.JSON(http.StatusOK, models.EmptyProfile(userID))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RecordTurnRequest is the JSON body of POST /memory/messages.
type RecordTurnRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

// RecordTurn handles POST /memory/messages. Write failures are surfaced
// with diagnostic detail; silently dropping a turn would lose
// conversational context.
func (h *Handler) RecordTurn(c *gin.Context) {
	var req RecordTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and message are required"})
		return
	}
	if req.UserID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and message are required"})
		return
	}

	episodeID, err := h.service.RecordTurn(c.Request.Context(), &models.TurnEvent{
		UserID:  req.UserID,
		Message: req.Message,
		Role:    req.Role,
		Name:    req.Name,
	})
	if err != nil {
		if errors.Is(err, zep.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": zep.ErrNotConfigured.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to store message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "episodeId": episodeID})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
