package models

import (
	"gorm.io/gorm"
)

const (
	AdminStatusUser  = "user"
	AdminStatusAdmin = "admin"
)

type User struct {
	gorm.Model
	Email        string `json:"email" gorm:"uniqueIndex"`
	Username     string `json:"username" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar_url"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsActive     bool   `json:"is_active"`
	AdminStatus  string `json:"admin_status" gorm:"default:user"`
}

func (u *User) IsAdmin() bool {
	return u.AdminStatus == AdminStatusAdmin
}
