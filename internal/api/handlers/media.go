package handlers

import (
	"errors"
	"path/filepath"

	"avcoe-site/internal/config"
	"avcoe-site/internal/logger"
	"avcoe-site/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(cfg *config.Config) *MediaHandler {
	return &MediaHandler{
		mediaService: services.NewMediaService(cfg.Paths.Uploads),
	}
}

type DeleteMediaRequest struct {
	Type     string `json:"type" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

// List returns media items, optionally filtered by ?type=
func (h *MediaHandler) List(c *gin.Context) {
	items, err := h.mediaService.List(c.Query("type"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to list media", "details": err.Error()})
		return
	}

	c.JSON(200, gin.H{"items": items})
}

// Upload stores a media file and its record. The extension is checked
// against the per-type allow-list before anything is written.
func (h *MediaHandler) Upload(c *gin.Context) {
	mediaType := c.PostForm("type")
	caption := c.PostForm("caption")

	if !services.ValidMediaType(mediaType) {
		c.JSON(400, gin.H{"ok": false, "error": "Invalid media type. Use image, video or model"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"ok": false, "error": "file is required"})
		return
	}

	filename := filepath.Base(file.Filename)
	if err := h.mediaService.CheckExtension(mediaType, filename); err != nil {
		c.JSON(400, gin.H{"ok": false, "error": err.Error()})
		return
	}

	dst, err := h.mediaService.UploadPath(mediaType, filename)
	if err != nil {
		c.JSON(500, gin.H{"ok": false, "error": "Failed to prepare upload directory"})
		return
	}

	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(500, gin.H{"ok": false, "error": "Failed to store file"})
		return
	}

	item, err := h.mediaService.SaveRecord(mediaType, filename, caption)
	if err != nil {
		c.JSON(500, gin.H{"ok": false, "error": "Failed to save media record"})
		return
	}

	logger.L().Info("media uploaded",
		zap.String("type", item.Type),
		zap.String("filename", item.Filename))
	c.JSON(200, gin.H{"ok": true, "item": item})
}

// Delete removes a media record and its file.
func (h *MediaHandler) Delete(c *gin.Context) {
	var req DeleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"ok": false, "error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.mediaService.Delete(req.Type, req.Filename); err != nil {
		if errors.Is(err, services.ErrMediaNotFound) {
			c.JSON(404, gin.H{"ok": false, "error": "Media not found"})
			return
		}
		c.JSON(500, gin.H{"ok": false, "error": "Failed to delete media", "details": err.Error()})
		return
	}

	logger.L().Info("media deleted",
		zap.String("type", req.Type),
		zap.String("filename", req.Filename))
	c.JSON(200, gin.H{"ok": true, "message": "Media deleted successfully"})
}

// ServeUpload serves a stored file under /uploads/<kind>/<filename>.
// Both plural and singular kind forms are accepted.
func (h *MediaHandler) ServeUpload(c *gin.Context) {
	mediaType, ok := services.NormalizeMediaKind(c.Param("kind"))
	if !ok {
		c.JSON(400, gin.H{"error": "Unknown media kind"})
		return
	}

	path, err := h.mediaService.FilePath(mediaType, c.Param("filename"))
	if err != nil {
		if errors.Is(err, services.ErrMediaNotFound) {
			c.JSON(404, gin.H{"error": "File not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to read file"})
		return
	}

	c.File(path)
}
