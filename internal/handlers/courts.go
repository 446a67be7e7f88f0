package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

type CourtHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCourtHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CourtHandler {
	return &CourtHandler{db: db, authHandler: authHandler}
}

type ListCourtsRequest struct{}

type ListCourtsResponse struct {
	Body struct {
		Items []models.Court `json:"items"`
		Total int            `json:"total"`
	}
}

func (h *CourtHandler) HandleListCourts(ctx context.Context, input *ListCourtsRequest) (*ListCourtsResponse, error) {
	var courts []models.Court
	if err := h.db.Where("is_available = ?", true).Find(&courts).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list courts: " + err.Error())
	}

	res := &ListCourtsResponse{}
	res.Body.Items = courts
	res.Body.Total = len(courts)
	return res, nil
}

type CreateCourtRequest struct {
	auth.AuthInput
	Body struct {
		Name        string  `json:"name" required:"true"`
		Description string  `json:"description"`
		Price       float64 `json:"price" required:"true" minimum:"0"`
	}
}

type CourtResponse struct {
	Body models.Court
}

func (h *CourtHandler) HandleCreateCourt(ctx context.Context, input *CreateCourtRequest) (*CourtResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	court := models.Court{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Price:       input.Body.Price,
		IsAvailable: true,
	}
	if err := h.db.Create(&court).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create court: " + err.Error())
	}

	return &CourtResponse{Body: court}, nil
}
