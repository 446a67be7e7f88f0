package handlers

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/database"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testAuth(db *gorm.DB) *auth.AuthHandler {
	return auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

func makeUser(t *testing.T, db *gorm.DB, username, adminStatus string) models.User {
	t.Helper()
	user := models.User{
		Email:       username + "@example.com",
		Username:    username,
		IsActive:    true,
		AdminStatus: adminStatus,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func cookieFor(t *testing.T, authHandler *auth.AuthHandler, userID uint) auth.AuthInput {
	t.Helper()
	token, err := authHandler.GenerateToken(userID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return auth.AuthInput{Cookie: auth.CookieName + "=" + token}
}

func makeEvent(t *testing.T, db *gorm.DB, maxMembers, additionalMembers int, start time.Time) models.Event {
	t.Helper()
	event := models.Event{
		Title:             "Evening game",
		MaxMembers:        maxMembers,
		AdditionalMembers: additionalMembers,
		StartTime:         start,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error with a status")
	}
	statusErr, ok := err.(huma.StatusError)
	if !ok {
		t.Fatalf("expected huma.StatusError, got %T: %v", err, err)
	}
	return statusErr.GetStatus()
}
