package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

type AssistantHandler struct {
	assistant *service.AssistantService
}

func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	assistant := router.Group("/assistant")
	if limiter != nil {
		assistant.Use(limiter)
	}
	{
		assistant.POST("/parse", h.ParseMeal)
		assistant.POST("/chat", h.Chat)
	}
}

// ParseMeal turns a free-text meal description into structured nutrition the
// client can review before logging.
func (h *AssistantHandler) ParseMeal(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not configured"})
		return
	}

	var req types.ParseMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	parsed, err := h.assistant.ParseMeal(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parsed)
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
		return
	}
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not configured"})
		return
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
