package database

import (
	"log"

	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Tag{},
		&models.Registration{},
		&models.WaitlistEntry{},
		&models.Court{},
		&models.CourtReservation{},
		&models.Coworking{},
		&models.CoworkingReservation{},
		&models.APIKey{},
	)
}
