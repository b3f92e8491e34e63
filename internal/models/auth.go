package models

import (
	"time"
)

type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AdminUserID uint      `json:"admin_user_id" gorm:"not null;index"`
	Token       string    `json:"token" gorm:"type:varchar(500);uniqueIndex;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	User        AdminUser `json:"user,omitempty" gorm:"foreignKey:AdminUserID"`
}

// LoginAttempt tracks consecutive failed logins per device fingerprint.
// BlockedUntil in the future means attempts are rejected without
// consulting credentials.
type LoginAttempt struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Fingerprint  string     `json:"fingerprint" gorm:"type:varchar(64);uniqueIndex;not null"`
	FailedCount  int        `json:"failed_count" gorm:"not null;default:0"`
	BlockedUntil *time.Time `json:"blocked_until" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"index"`
}
