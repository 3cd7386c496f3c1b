package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type AdminUser struct {
	gorm.Model
	Email        string     `json:"email" gorm:"uniqueIndex;size:191"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	LastLogin    *time.Time `json:"lastLogin"`
}
