package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

type TagHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewTagHandler(db *gorm.DB, authHandler *auth.AuthHandler) *TagHandler {
	return &TagHandler{db: db, authHandler: authHandler}
}

type CreateTagRequest struct {
	auth.AuthInput
	Body struct {
		Name string `json:"name" required:"true"`
	}
}

type TagResponse struct {
	Body models.Tag
}

func (h *TagHandler) HandleCreate(ctx context.Context, input *CreateTagRequest) (*TagResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	tag := models.Tag{Name: input.Body.Name}
	if err := h.db.Create(&tag).Error; err != nil {
		return nil, huma.Error409Conflict("Failed to create tag: " + err.Error())
	}

	return &TagResponse{Body: tag}, nil
}

type ListTagsRequest struct{}

type ListTagsResponse struct {
	Body struct {
		Items []models.Tag `json:"items"`
	}
}

func (h *TagHandler) HandleList(ctx context.Context, input *ListTagsRequest) (*ListTagsResponse, error) {
	var tags []models.Tag
	if err := h.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list tags: " + err.Error())
	}

	res := &ListTagsResponse{}
	res.Body.Items = tags
	return res, nil
}
