package tasks

import (
	"testing"
	"time"

	"github.com/rondo-club/rondo-api/internal/database"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSweepUnconfirmed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	court := models.Court{Name: "Court 1", Price: 100}
	db.Create(&court)
	user := models.User{Email: "alice@example.com", Username: "alice"}
	db.Create(&user)

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	stale := models.CourtReservation{CourtID: court.ID, UserID: user.ID, Date: day, Hour: 10}
	fresh := models.CourtReservation{CourtID: court.ID, UserID: user.ID, Date: day, Hour: 11}
	paid := models.CourtReservation{CourtID: court.ID, UserID: user.ID, Date: day, Hour: 12, IsConfirmed: true}
	db.Create(&stale)
	db.Create(&fresh)
	db.Create(&paid)

	// Backdate the stale hold and the confirmed one beyond the TTL.
	old := time.Now().Add(-time.Hour)
	db.Model(&models.CourtReservation{}).Where("id IN ?", []uint{stale.ID, paid.ID}).
		Update("created_at", old)

	sweeper := NewSweeper(db, 15*time.Minute)
	released, err := sweeper.SweepUnconfirmed()
	if err != nil {
		t.Fatalf("SweepUnconfirmed failed: %v", err)
	}
	if released != 1 {
		t.Errorf("expected 1 released reservation, got %d", released)
	}

	var remaining []models.CourtReservation
	db.Order("hour asc").Find(&remaining)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 reservations left, got %d", len(remaining))
	}
	if remaining[0].ID != fresh.ID || remaining[1].ID != paid.ID {
		t.Errorf("wrong reservations survived the sweep: %+v", remaining)
	}
}
