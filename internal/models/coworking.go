package models

import (
	"time"

	"gorm.io/gorm"
)

type Coworking struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	IsAvailable bool   `json:"is_available" gorm:"default:true"`

	Reservations []CoworkingReservation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type CoworkingReservation struct {
	gorm.Model
	CoworkingID uint      `json:"coworking_id"`
	UserID      uint      `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Coworking   Coworking `json:"-" gorm:"foreignKey:CoworkingID"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}
