package models

import (
	"gorm.io/gorm"
)

// Registration is a confirmed seat in an event's primary pool.
type Registration struct {
	gorm.Model
	UserID  uint  `json:"user_id" gorm:"uniqueIndex:idx_registration_user_event"`
	EventID uint  `json:"event_id" gorm:"uniqueIndex:idx_registration_user_event"`
	User    User  `json:"-" gorm:"foreignKey:UserID"`
	Event   Event `json:"-" gorm:"foreignKey:EventID"`
}

// WaitlistEntry is a seat in the overflow pool. Entries are promoted in
// ascending ID order, so insertion order is priority order.
type WaitlistEntry struct {
	gorm.Model
	UserID  uint  `json:"user_id" gorm:"uniqueIndex:idx_waitlist_user_event"`
	EventID uint  `json:"event_id" gorm:"uniqueIndex:idx_waitlist_user_event"`
	User    User  `json:"-" gorm:"foreignKey:UserID"`
	Event   Event `json:"-" gorm:"foreignKey:EventID"`
}
