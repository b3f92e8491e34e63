package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"avcoe-site/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrInvalidMediaType = errors.New("invalid media type")
	ErrExtensionDenied  = errors.New("file extension not allowed")
)

// allowedExtensions is the per-kind extension allow-list for uploads.
var allowedExtensions = map[string][]string{
	models.MediaTypeImage: {"jpg", "jpeg", "png", "gif", "webp"},
	models.MediaTypeVideo: {"mp4", "webm", "mov"},
	models.MediaTypeModel: {"mp4", "webm", "mov", "glb", "gltf"},
}

// kindAliases maps the URL path forms (plural and singular) to the
// internal media type.
var kindAliases = map[string]string{
	"image":  models.MediaTypeImage,
	"images": models.MediaTypeImage,
	"video":  models.MediaTypeVideo,
	"videos": models.MediaTypeVideo,
	"model":  models.MediaTypeModel,
	"models": models.MediaTypeModel,
}

// NormalizeMediaKind maps a path segment like "images" or "image" to the
// internal type, reporting whether the kind is recognized.
func NormalizeMediaKind(kind string) (string, bool) {
	t, ok := kindAliases[strings.ToLower(kind)]
	return t, ok
}

// ValidMediaType reports whether t is one of the internal media types.
func ValidMediaType(t string) bool {
	_, ok := allowedExtensions[t]
	return ok
}

type MediaService struct {
	uploadDir string
}

func NewMediaService(uploadDir string) *MediaService {
	return &MediaService{uploadDir: uploadDir}
}

// List returns media items, optionally filtered by type.
func (s *MediaService) List(mediaType string) ([]models.MediaItem, error) {
	var items []models.MediaItem
	q := models.DB.Model(&models.MediaItem{})
	if mediaType != "" {
		q = q.Where("type = ?", mediaType)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CheckExtension validates an upload filename against the allow-list for
// the given media type.
func (s *MediaService) CheckExtension(mediaType, filename string) error {
	if !ValidMediaType(mediaType) {
		return ErrInvalidMediaType
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, allowed := range allowedExtensions[mediaType] {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: .%s for type %s", ErrExtensionDenied, ext, mediaType)
}

// UploadPath returns the destination path for an upload, creating the
// type directory if needed.
func (s *MediaService) UploadPath(mediaType, filename string) (string, error) {
	dir := filepath.Join(s.uploadDir, mediaType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

// SaveRecord upserts the media record for a stored file. Re-uploading
// the same (type, filename) replaces the caption rather than failing on
// the unique index.
func (s *MediaService) SaveRecord(mediaType, filename, caption string) (*models.MediaItem, error) {
	url := "/uploads/" + mediaType + "/" + filename

	var item models.MediaItem
	err := models.DB.Where("type = ? AND filename = ?", mediaType, filename).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.MediaItem{Type: mediaType, Filename: filename, URL: url, Caption: caption}
		if err := models.DB.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Caption = caption
		item.URL = url
		if err := models.DB.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	return &item, nil
}

// Delete removes the record and its file. A file already missing on disk
// is tolerated; a missing record is ErrMediaNotFound.
func (s *MediaService) Delete(mediaType, filename string) error {
	var item models.MediaItem
	if err := models.DB.Where("type = ? AND filename = ?", mediaType, filename).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	path := filepath.Join(s.uploadDir, mediaType, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return models.DB.Delete(&item).Error
}

// FilePath resolves a stored upload for serving. Returns ErrMediaNotFound
// when the file does not exist on disk.
func (s *MediaService) FilePath(mediaType, filename string) (string, error) {
	path := filepath.Join(s.uploadDir, mediaType, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrMediaNotFound
		}
		return "", err
	}
	return path, nil
}
