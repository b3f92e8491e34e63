package models

import (
	"time"
)

// SiteSettings is a singleton: exactly one row exists, seeded with
// defaults at boot and only ever updated afterwards.
type SiteSettings struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	DefaultLanguage  string    `json:"default_language" gorm:"type:varchar(10);not null;default:'en'"`
	SliderIntervalMS int       `json:"slider_interval_ms" gorm:"not null;default:7000"`
	WelcomeMessage   string    `json:"welcome_message" gorm:"type:text"`
	UpdatedAt        time.Time `json:"updated_at"`
}
