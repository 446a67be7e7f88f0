package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey grants service-to-service access on behalf of its owner. The key
// value is shown once at creation; a nil ExpiresAt never expires.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id"`
	Name       string     `json:"name"`
	Key        string     `json:"-" gorm:"uniqueIndex"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	User       User       `json:"-" gorm:"foreignKey:UserID"`
}
