package handlers

import (
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{
		settingsService: services.NewSettingsService(),
	}
}

type UpdateSettingsRequest struct {
	DefaultLanguage  string `json:"default_language" binding:"required"`
	SliderIntervalMS int    `json:"slider_interval_ms" binding:"required,gt=0"`
	WelcomeMessage   string `json:"welcome_message"`
}

// Get returns the settings singleton.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load settings", "details": err.Error()})
		return
	}

	c.JSON(200, gin.H{"settings": settings})
}

// Update replaces the settings singleton.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"ok": false, "error": "Invalid request", "details": err.Error()})
		return
	}

	settings, err := h.settingsService.Update(req.DefaultLanguage, req.SliderIntervalMS, req.WelcomeMessage)
	if err != nil {
		c.JSON(500, gin.H{"ok": false, "error": "Failed to save settings", "details": err.Error()})
		return
	}

	c.JSON(200, gin.H{"ok": true, "message": "Settings saved", "settings": settings})
}
