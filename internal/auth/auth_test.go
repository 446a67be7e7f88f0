package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/database"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db), db
}

func TestAuthorize_CookieRoundTrip(t *testing.T) {
	h, db := setup(t)

	user := models.User{Email: "alice@example.com", Username: "alice"}
	db.Create(&user)

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := h.Authorize(context.Background(), AuthInput{Cookie: CookieName + "=" + token})
	if err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthorize_InvalidToken(t *testing.T) {
	h, _ := setup(t)

	if _, err := h.Authorize(context.Background(), AuthInput{Cookie: CookieName + "=garbage"}); err == nil {
		t.Fatal("expected error for garbage token")
	}
	if _, err := h.Authorize(context.Background(), AuthInput{}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestAuthorize_APIKey(t *testing.T) {
	h, db := setup(t)

	user := models.User{Email: "svc@example.com", Username: "svc"}
	db.Create(&user)
	db.Create(&models.APIKey{UserID: user.ID, Key: "live-key", Name: "ci"})

	userID, err := h.Authorize(context.Background(), AuthInput{APIKey: "live-key"})
	if err != nil {
		t.Fatalf("Authorize with API key failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected user ID %d, got %d", user.ID, userID)
	}

	var keyModel models.APIKey
	db.Where("key = ?", "live-key").First(&keyModel)
	if keyModel.LastUsedAt == nil {
		t.Error("expected last_used_at to be set after use")
	}

	expired := time.Now().Add(-time.Hour)
	db.Create(&models.APIKey{UserID: user.ID, Key: "dead-key", Name: "old", ExpiresAt: &expired})
	if _, err := h.Authorize(context.Background(), AuthInput{APIKey: "dead-key"}); err == nil {
		t.Fatal("expected error for expired API key")
	}
}

func TestRequireAdmin(t *testing.T) {
	h, db := setup(t)

	admin := models.User{Email: "root@example.com", Username: "root", AdminStatus: models.AdminStatusAdmin}
	db.Create(&admin)
	member := models.User{Email: "bob@example.com", Username: "bob", AdminStatus: models.AdminStatusUser}
	db.Create(&member)

	adminToken, _ := h.GenerateToken(admin.ID)
	if _, err := h.RequireAdmin(context.Background(), AuthInput{Cookie: CookieName + "=" + adminToken}); err != nil {
		t.Fatalf("RequireAdmin rejected an admin: %v", err)
	}

	memberToken, _ := h.GenerateToken(member.ID)
	if _, err := h.RequireAdmin(context.Background(), AuthInput{Cookie: CookieName + "=" + memberToken}); err == nil {
		t.Fatal("RequireAdmin accepted a regular user")
	}
}

func TestActionTokens(t *testing.T) {
	h, _ := setup(t)

	token, err := h.GenerateActionToken("alice@example.com", "confirm", time.Hour)
	if err != nil {
		t.Fatalf("GenerateActionToken failed: %v", err)
	}

	email, err := h.ConfirmActionToken(token, "confirm")
	if err != nil {
		t.Fatalf("ConfirmActionToken failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", email)
	}

	if _, err := h.ConfirmActionToken(token, "reset"); err == nil {
		t.Fatal("expected purpose mismatch to be rejected")
	}

	stale, _ := h.GenerateActionToken("alice@example.com", "confirm", -time.Minute)
	if _, err := h.ConfirmActionToken(stale, "confirm"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}
