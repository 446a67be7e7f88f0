// Package tasks holds the periodic maintenance jobs.
package tasks

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

// Sweeper releases court slots whose payment was never confirmed. A
// temporary reservation older than the hold TTL is deleted so the slot can
// be booked again.
type Sweeper struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSweeper(db *gorm.DB, ttl time.Duration) *Sweeper {
	return &Sweeper{db: db, ttl: ttl}
}

// SweepUnconfirmed deletes stale unconfirmed reservations and reports how
// many were released.
func (s *Sweeper) SweepUnconfirmed() (int64, error) {
	cutoff := time.Now().Add(-s.ttl)
	res := s.db.Unscoped().
		Where("is_confirmed = ? AND created_at < ?", false, cutoff).
		Delete(&models.CourtReservation{})
	return res.RowsAffected, res.Error
}

// Schedule registers the sweeper on c with the given cron spec.
func Schedule(c *cron.Cron, spec string, s *Sweeper) error {
	_, err := c.AddFunc(spec, func() {
		released, err := s.SweepUnconfirmed()
		if err != nil {
			log.Printf("Failed to sweep unconfirmed reservations: %v", err)
			return
		}
		if released > 0 {
			log.Printf("Released %d unconfirmed court reservations", released)
		}
	})
	return err
}
