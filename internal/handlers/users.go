package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/models"
	"github.com/rondo-club/rondo-api/internal/notifier"
	"gorm.io/gorm"
)

const (
	purposeConfirmEmail  = "confirm_email"
	purposePasswordReset = "password_reset"

	confirmTokenTTL = 24 * time.Hour
	resetTokenTTL   = 30 * time.Minute
)

type UserHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	queue       *notifier.Queue
}

func NewUserHandler(db *gorm.DB, authHandler *auth.AuthHandler, queue *notifier.Queue) *UserHandler {
	return &UserHandler{db: db, authHandler: authHandler, queue: queue}
}

type SignupRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" required:"true"`
		Username string `json:"username" required:"true" minLength:"3"`
		Password string `json:"password" required:"true" minLength:"8"`
	}
}

type SignupResponse struct {
	Body struct {
		Message string `json:"message"`
		User    struct {
			ID       uint   `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
}

func (h *UserHandler) HandleSignup(ctx context.Context, input *SignupRequest) (*SignupResponse, error) {
	var existing models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("A user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	if err := h.db.Where("username = ?", input.Body.Username).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("This username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	hash, err := auth.HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	user := models.User{
		Email:        input.Body.Email,
		Username:     input.Body.Username,
		PasswordHash: hash,
		IsActive:     false,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create user: " + err.Error())
	}

	if h.queue != nil {
		h.queue.Welcome(user)
		if token, err := h.authHandler.GenerateActionToken(user.Email, purposeConfirmEmail, confirmTokenTTL); err == nil {
			h.queue.ConfirmEmail(user, token)
		}
	}

	res := &SignupResponse{}
	res.Body.Message = "User created"
	res.Body.User.ID = user.ID
	res.Body.User.Email = user.Email
	res.Body.User.Username = user.Username
	return res, nil
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" format:"email" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *UserHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Incorrect email or password")
	}
	if !auth.CheckPassword(user.PasswordHash, input.Body.Password) {
		return nil, huma.Error401Unauthorized("Incorrect email or password")
	}

	if !user.IsActive {
		// Resend the confirmation link; the account works once confirmed.
		if h.queue != nil {
			if token, err := h.authHandler.GenerateActionToken(user.Email, purposeConfirmEmail, confirmTokenTTL); err == nil {
				h.queue.ConfirmEmail(user, token)
			}
		}
		return nil, huma.Error403Forbidden("Email is not confirmed yet, check your inbox")
	}

	token, err := h.authHandler.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	if h.queue != nil {
		h.queue.LoginAlert(user)
	}

	res := &LoginResponse{SetCookie: h.authHandler.SessionCookie(token)}
	res.Body.Message = "Logged in"
	return res, nil
}

type LogoutRequest struct{}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

func (h *UserHandler) HandleLogout(ctx context.Context, input *LogoutRequest) (*LogoutResponse, error) {
	res := &LogoutResponse{
		SetCookie: http.Cookie{
			Name:     auth.CookieName,
			Value:    "",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Path:     "/",
		},
	}
	res.Body.Message = "Logged out"
	return res, nil
}

type MeRequest struct {
	auth.AuthInput
}

type MeResponse struct {
	Body struct {
		Email       string    `json:"email"`
		Username    string    `json:"username"`
		AvatarURL   string    `json:"avatar_url"`
		FirstName   string    `json:"first_name"`
		LastName    string    `json:"last_name"`
		AdminStatus string    `json:"admin_status"`
		IsActive    bool      `json:"is_active"`
		CreatedAt   time.Time `json:"created_at"`
	}
}

func (h *UserHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.authHandler.CurrentUser(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.Email = user.Email
	res.Body.Username = user.Username
	res.Body.AvatarURL = user.AvatarURL
	res.Body.FirstName = user.FirstName
	res.Body.LastName = user.LastName
	res.Body.AdminStatus = user.AdminStatus
	res.Body.IsActive = user.IsActive
	res.Body.CreatedAt = user.CreatedAt
	return res, nil
}

type ConfirmEmailRequest struct {
	Token string `path:"token"`
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *UserHandler) HandleConfirmEmail(ctx context.Context, input *ConfirmEmailRequest) (*MessageResponse, error) {
	email, err := h.authHandler.ConfirmActionToken(input.Token, purposeConfirmEmail)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid or expired token")
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	if err := h.db.Model(&user).Update("is_active", true).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to activate user: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Email confirmed"
	return res, nil
}

type ForgotPasswordRequest struct {
	Body struct {
		Email string `json:"email" format:"email" required:"true"`
	}
}

func (h *UserHandler) HandleForgotPassword(ctx context.Context, input *ForgotPasswordRequest) (*MessageResponse, error) {
	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	if h.queue != nil {
		if token, err := h.authHandler.GenerateActionToken(user.Email, purposePasswordReset, resetTokenTTL); err == nil {
			h.queue.PasswordReset(user, token)
		}
	}

	res := &MessageResponse{}
	res.Body.Message = "Password reset instructions sent"
	return res, nil
}

type ResetPasswordRequest struct {
	Body struct {
		Token    string `json:"token" required:"true"`
		Password string `json:"password" required:"true" minLength:"8"`
	}
}

func (h *UserHandler) HandleResetPassword(ctx context.Context, input *ResetPasswordRequest) (*MessageResponse, error) {
	email, err := h.authHandler.ConfirmActionToken(input.Body.Token, purposePasswordReset)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid or expired token")
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	hash, err := auth.HashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}
	if err := h.db.Model(&user).Update("password_hash", hash).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update password: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Password updated"
	return res, nil
}
