// Package booking holds the event registration rules: primary-pool capacity
// enforcement, the overflow waitlist, and FIFO promotion on cancellation.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

// Notifier receives fire-and-forget notification requests. Delivery failures
// never affect the ledger writes that triggered them.
type Notifier interface {
	RegistrationConfirmed(user models.User, event models.Event)
}

type Coordinator struct {
	db       *gorm.DB
	notifier Notifier
}

// NewCoordinator wires the registration rules over db. notifier may be nil,
// in which case confirmations are silently skipped.
func NewCoordinator(db *gorm.DB, notifier Notifier) *Coordinator {
	return &Coordinator{db: db, notifier: notifier}
}

// Register places userID into the primary pool of eventID.
//
// The capacity comparison is deliberately MaxMembers < count, which admits
// MaxMembers+1 registrants. That boundary is inherited behavior callers rely
// on; do not tighten it here.
func (c *Coordinator) Register(ctx context.Context, eventID, userID uint) (*models.Registration, error) {
	var (
		registration models.Registration
		user         models.User
		event        models.Event
	)

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx, &models.Registration{}, eventID, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyRegistered
		}

		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		count, err := poolCount(tx, &models.Registration{}, eventID)
		if err != nil {
			return err
		}
		if event.MaxMembers < int(count) {
			return ErrEventFull
		}

		if event.StartTime.Before(time.Now().UTC()) {
			return ErrEventStarted
		}

		waiting, err := exists(tx, &models.WaitlistEntry{}, eventID, userID)
		if err != nil {
			return err
		}
		if waiting {
			return ErrAlreadyOnWaitlist
		}

		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		registration = models.Registration{UserID: userID, EventID: eventID}
		return tx.Create(&registration).Error
	})
	if err != nil {
		return nil, err
	}

	c.notifyConfirmed(user, event)
	return &registration, nil
}

// RegisterWaitlist places userID into the overflow pool of eventID. The same
// precondition order applies with the pools swapped; the boundary check
// against AdditionalMembers carries the same off-by-one as Register.
func (c *Coordinator) RegisterWaitlist(ctx context.Context, eventID, userID uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		waiting, err := exists(tx, &models.WaitlistEntry{}, eventID, userID)
		if err != nil {
			return err
		}
		if waiting {
			return ErrAlreadyOnWaitlist
		}

		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		count, err := poolCount(tx, &models.WaitlistEntry{}, eventID)
		if err != nil {
			return err
		}
		if event.AdditionalMembers < int(count) {
			return ErrEventFull
		}

		if event.StartTime.Before(time.Now().UTC()) {
			return ErrEventStarted
		}

		taken, err := exists(tx, &models.Registration{}, eventID, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyRegistered
		}

		entry = models.WaitlistEntry{UserID: userID, EventID: eventID}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Cancel removes userID's primary registration and promotes the earliest
// waitlist entry, if any, into the freed slot. The delete and the promotion
// happen in one transaction; at most one user is promoted per cancellation.
func (c *Coordinator) Cancel(ctx context.Context, eventID, userID uint) error {
	var (
		promoted     bool
		promotedUser models.User
		event        models.Event
	)

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration models.Registration
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return err
		}

		if err := tx.First(&event, eventID).Error; err != nil {
			return err
		}
		if event.StartTime.Before(time.Now().UTC()) {
			return ErrEventStarted
		}

		// Hard delete: a soft-deleted row would keep occupying the
		// (user_id, event_id) unique index and block re-registration.
		if err := tx.Unscoped().Delete(&registration).Error; err != nil {
			return err
		}

		var next models.WaitlistEntry
		err = tx.Where("event_id = ?", eventID).Order("id asc").First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // nobody waiting, the slot just frees up
			}
			return err
		}

		if err := tx.Unscoped().Delete(&next).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Registration{UserID: next.UserID, EventID: eventID}).Error; err != nil {
			return err
		}
		if err := tx.First(&promotedUser, next.UserID).Error; err != nil {
			return err
		}

		promoted = true
		return nil
	})
	if err != nil {
		return err
	}

	if promoted {
		c.notifyConfirmed(promotedUser, event)
	}
	return nil
}

// CancelWaitlist withdraws userID's waitlist entry. The overflow pool only
// shrinks here: removing an entry never promotes anyone.
func (c *Coordinator) CancelWaitlist(ctx context.Context, eventID, userID uint) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.WaitlistEntry
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotRegistered
			}
			return err
		}

		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			return err
		}
		if event.StartTime.Before(time.Now().UTC()) {
			return ErrEventStarted
		}

		return tx.Unscoped().Delete(&entry).Error
	})
}

// Registrations lists userID's primary registrations.
func (c *Coordinator) Registrations(ctx context.Context, userID uint) ([]models.Registration, error) {
	var registrations []models.Registration
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).Find(&registrations).Error
	return registrations, err
}

// RegistrationFor returns userID's primary registration for eventID, or
// ErrNotRegistered.
func (c *Coordinator) RegistrationFor(ctx context.Context, eventID, userID uint) (*models.Registration, error) {
	var registration models.Registration
	err := c.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	return &registration, nil
}

// PoolCounts reports current occupancy of both pools for an event.
func (c *Coordinator) PoolCounts(ctx context.Context, eventID uint) (primary, overflow int64, err error) {
	tx := c.db.WithContext(ctx)
	if primary, err = poolCount(tx, &models.Registration{}, eventID); err != nil {
		return 0, 0, err
	}
	if overflow, err = poolCount(tx, &models.WaitlistEntry{}, eventID); err != nil {
		return 0, 0, err
	}
	return primary, overflow, nil
}

func (c *Coordinator) notifyConfirmed(user models.User, event models.Event) {
	if c.notifier == nil {
		return
	}
	c.notifier.RegistrationConfirmed(user, event)
}

func poolCount(tx *gorm.DB, model any, eventID uint) (int64, error) {
	var count int64
	err := tx.Model(model).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func exists(tx *gorm.DB, model any, eventID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(model).Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count).Error
	return count > 0, err
}
