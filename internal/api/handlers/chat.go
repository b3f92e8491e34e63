package handlers

import (
	"avcoe-site/internal/config"
	"avcoe-site/internal/logger"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		chatService: services.NewChatService(cfg),
	}
}

type QueryRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Query proxies a user question to the generation API and relays the
// reply. Any upstream failure surfaces as a 500 with the error string.
func (h *ChatHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.Language == "" {
		req.Language = "en"
	}

	reply, err := h.chatService.Query(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		logger.L().Error("generation API call failed", zap.Error(err))
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"reply": reply, "language": req.Language})
}
