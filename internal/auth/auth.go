package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput is embedded into every protected request. Callers authenticate
// with either the auth_token cookie or an X-API-KEY header.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie" required:"false"`
	APIKey string `header:"X-API-KEY" doc:"Service API key" required:"false"`
}

// Authorize resolves the calling user ID from an API key or a session
// cookie, in that order.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (uint, error) {
	if input.APIKey != "" {
		var keyModel models.APIKey
		if err := h.db.Where("key = ?", input.APIKey).First(&keyModel).Error; err == nil {
			if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
				return 0, huma.Error401Unauthorized("Unauthorized: API Key expired")
			}
			h.db.Model(&keyModel).Update("last_used_at", time.Now())
			return keyModel.UserID, nil
		}
	}

	tokenString, err := cookieValue(input.Cookie, CookieName)
	if err != nil {
		return 0, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: Invalid token claims")
	}

	return uint(userIDFloat), nil
}

// CurrentUser is Authorize plus the user row lookup.
func (h *AuthHandler) CurrentUser(ctx context.Context, input AuthInput) (*models.User, error) {
	userID, err := h.Authorize(ctx, input)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	return &user, nil
}

// RequireAdmin rejects callers whose account is not an admin.
func (h *AuthHandler) RequireAdmin(ctx context.Context, input AuthInput) (*models.User, error) {
	user, err := h.CurrentUser(ctx, input)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, huma.Error403Forbidden("Access denied: admin rights required")
	}
	return user, nil
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// SessionCookie builds the Set-Cookie value carrying a session token.
func (h *AuthHandler) SessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}
}

// GenerateActionToken issues a single-purpose token (email confirmation,
// password reset) bound to an email address.
func (h *AuthHandler) GenerateActionToken(email, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     email,
		"purpose": purpose,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ConfirmActionToken validates an action token and returns the email it was
// issued for. Purpose mismatches are rejected so a reset token cannot
// confirm an email address.
func (h *AuthHandler) ConfirmActionToken(tokenString, purpose string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return "", fmt.Errorf("token purpose mismatch")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return "", fmt.Errorf("token subject missing")
	}
	return email, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// cookieValue extracts one cookie from a raw Cookie header.
func cookieValue(header, name string) (string, error) {
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	c, err := req.Cookie(name)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
