package models

import (
	"time"

	"gorm.io/gorm"
)

type Court struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available" gorm:"default:true"`

	Reservations []CourtReservation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CourtReservation holds one hour slot on one court. A reservation starts
// unconfirmed and becomes confirmed once payment goes through; stale
// unconfirmed holds are swept by a background job.
type CourtReservation struct {
	gorm.Model
	CourtID     uint      `json:"court_id" gorm:"uniqueIndex:idx_court_date_hour"`
	UserID      uint      `json:"user_id"`
	Date        time.Time `json:"date" gorm:"uniqueIndex:idx_court_date_hour"`
	Hour        int       `json:"hour" gorm:"uniqueIndex:idx_court_date_hour"`
	IsConfirmed bool      `json:"is_confirmed"`
	Court       Court     `json:"-" gorm:"foreignKey:CourtID"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}
