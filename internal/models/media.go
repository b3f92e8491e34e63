package models

import (
	"time"
)

// Media kinds. "model" is a short clip showcasing a 3D asset.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeModel = "model"
)

type MediaItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_media_type_filename;index"`
	Filename  string    `json:"filename" gorm:"type:varchar(255);not null;uniqueIndex:idx_media_type_filename"`
	URL       string    `json:"url" gorm:"type:varchar(500);not null"`
	Caption   string    `json:"caption" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
