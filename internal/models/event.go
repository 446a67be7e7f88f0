package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	MediaURL          string     `json:"media_url"`
	Location          string     `json:"location"`
	MaxMembers        int        `json:"max_members"`
	AdditionalMembers int        `json:"additional_members"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	Tags              []Tag      `json:"tags" gorm:"many2many:event_tags"`

	Registrations   []Registration  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	WaitlistEntries []WaitlistEntry `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
