package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

type APIKeyHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewAPIKeyHandler(db *gorm.DB, authHandler *auth.AuthHandler) *APIKeyHandler {
	return &APIKeyHandler{db: db, authHandler: authHandler}
}

type CreateAPIKeyInput struct {
	auth.AuthInput
	Body struct {
		Name      string     `json:"name"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
}

type APIKeyResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type CreateAPIKeyOutput struct {
	Body APIKeyResponse
}

func (h *APIKeyHandler) HandleCreate(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}

	apiKey := models.APIKey{
		UserID:    userID,
		Key:       hex.EncodeToString(keyBytes),
		Name:      input.Body.Name,
		ExpiresAt: input.Body.ExpiresAt,
	}
	if err := h.db.Create(&apiKey).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to store key: " + err.Error())
	}

	return &CreateAPIKeyOutput{Body: APIKeyResponse{
		ID:        apiKey.ID,
		Name:      apiKey.Name,
		Key:       apiKey.Key, // shown once, on creation
		CreatedAt: apiKey.CreatedAt,
		ExpiresAt: apiKey.ExpiresAt,
	}}, nil
}

type ListAPIKeysInput struct {
	auth.AuthInput
}

type ListAPIKeysOutput struct {
	Body struct {
		Items []APIKeyResponse `json:"items"`
	}
}

func (h *APIKeyHandler) HandleList(ctx context.Context, input *ListAPIKeysInput) (*ListAPIKeysOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var keys []models.APIKey
	if err := h.db.Where("user_id = ?", userID).Find(&keys).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list keys: " + err.Error())
	}

	res := &ListAPIKeysOutput{}
	res.Body.Items = make([]APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		res.Body.Items = append(res.Body.Items, APIKeyResponse{
			ID:         k.ID,
			Name:       k.Name,
			CreatedAt:  k.CreatedAt,
			ExpiresAt:  k.ExpiresAt,
			LastUsedAt: k.LastUsedAt,
		})
	}
	return res, nil
}

type DeleteAPIKeyInput struct {
	auth.AuthInput
	KeyID uint `path:"key_id"`
}

func (h *APIKeyHandler) HandleDelete(ctx context.Context, input *DeleteAPIKeyInput) (*MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var key models.APIKey
	if err := h.db.Where("id = ? AND user_id = ?", input.KeyID, userID).First(&key).Error; err != nil {
		return nil, huma.Error404NotFound("API key not found")
	}

	if err := h.db.Unscoped().Delete(&key).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete key: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "API key deleted"
	return res, nil
}
