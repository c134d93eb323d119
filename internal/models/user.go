package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an operator account allowed to persist records and start checkouts.
type User struct {
	gorm.Model
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Role         string     `gorm:"default:'analyst'" json:"role"`
	Status       string     `gorm:"default:'active'" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	TokenVersion int        `gorm:"default:1" json:"-"`
}

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"

	UserStatusActive = "active"
)
