package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

type CoworkingHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCoworkingHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CoworkingHandler {
	return &CoworkingHandler{db: db, authHandler: authHandler}
}

type ListCoworkingRequest struct{}

type ListCoworkingResponse struct {
	Body struct {
		Items []models.Coworking `json:"items"`
		Total int                `json:"total"`
	}
}

func (h *CoworkingHandler) HandleList(ctx context.Context, input *ListCoworkingRequest) (*ListCoworkingResponse, error) {
	var spaces []models.Coworking
	if err := h.db.Where("is_available = ?", true).Find(&spaces).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list coworking spaces: " + err.Error())
	}

	res := &ListCoworkingResponse{}
	res.Body.Items = spaces
	res.Body.Total = len(spaces)
	return res, nil
}

type CreateCoworkingRequest struct {
	auth.AuthInput
	Body struct {
		Name        string `json:"name" required:"true"`
		Description string `json:"description"`
	}
}

type CoworkingResponse struct {
	Body models.Coworking
}

func (h *CoworkingHandler) HandleCreate(ctx context.Context, input *CreateCoworkingRequest) (*CoworkingResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	space := models.Coworking{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		IsAvailable: true,
	}
	if err := h.db.Create(&space).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create coworking space: " + err.Error())
	}

	return &CoworkingResponse{Body: space}, nil
}

type CoworkingReservationPayload struct {
	ID          uint      `json:"id"`
	CoworkingID uint      `json:"coworking_id"`
	UserID      uint      `json:"user_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type ReserveCoworkingRequest struct {
	auth.AuthInput
	Body struct {
		CoworkingID uint      `json:"coworking_id" required:"true"`
		StartTime   time.Time `json:"start_time" required:"true"`
		EndTime     time.Time `json:"end_time" required:"true"`
	}
}

type CoworkingReservationResponse struct {
	Body CoworkingReservationPayload
}

func (h *CoworkingHandler) HandleReserve(ctx context.Context, input *ReserveCoworkingRequest) (*CoworkingReservationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	if !input.Body.StartTime.Before(input.Body.EndTime) {
		return nil, huma.Error400BadRequest("Start time must be before end time")
	}

	var space models.Coworking
	if err := h.db.First(&space, input.Body.CoworkingID).Error; err != nil {
		return nil, huma.Error404NotFound("Coworking space not found")
	}
	if !space.IsAvailable {
		return nil, huma.Error409Conflict("Coworking space is not available")
	}

	reservation := models.CoworkingReservation{
		CoworkingID: space.ID,
		UserID:      userID,
		StartTime:   input.Body.StartTime,
		EndTime:     input.Body.EndTime,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		err := tx.Model(&models.CoworkingReservation{}).
			Where("coworking_id = ? AND start_time < ? AND end_time > ?",
				space.ID, input.Body.EndTime, input.Body.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return huma.Error409Conflict("This time range is already booked")
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			return nil, err
		}
		return nil, huma.Error500InternalServerError("Failed to create reservation: " + err.Error())
	}

	return &CoworkingReservationResponse{Body: CoworkingReservationPayload{
		ID:          reservation.ID,
		CoworkingID: reservation.CoworkingID,
		UserID:      reservation.UserID,
		StartTime:   reservation.StartTime,
		EndTime:     reservation.EndTime,
	}}, nil
}

type MyCoworkingReservationsRequest struct {
	auth.AuthInput
}

type ListCoworkingReservationsResponse struct {
	Body struct {
		Items []CoworkingReservationPayload `json:"items"`
		Total int                           `json:"total"`
	}
}

func (h *CoworkingHandler) HandleMyReservations(ctx context.Context, input *MyCoworkingReservationsRequest) (*ListCoworkingReservationsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var reservations []models.CoworkingReservation
	if err := h.db.Where("user_id = ?", userID).Order("start_time asc").Find(&reservations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reservations: " + err.Error())
	}

	res := &ListCoworkingReservationsResponse{}
	res.Body.Items = make([]CoworkingReservationPayload, 0, len(reservations))
	for _, r := range reservations {
		res.Body.Items = append(res.Body.Items, CoworkingReservationPayload{
			ID:          r.ID,
			CoworkingID: r.CoworkingID,
			UserID:      r.UserID,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
		})
	}
	res.Body.Total = len(res.Body.Items)
	return res, nil
}

type CancelCoworkingReservationRequest struct {
	auth.AuthInput
	ReservationID uint `path:"reservation_id"`
}

func (h *CoworkingHandler) HandleCancelReservation(ctx context.Context, input *CancelCoworkingReservationRequest) (*MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var reservation models.CoworkingReservation
	if err := h.db.First(&reservation, input.ReservationID).Error; err != nil {
		return nil, huma.Error404NotFound("Reservation not found")
	}
	if reservation.UserID != userID {
		return nil, huma.Error403Forbidden("Access denied")
	}

	if err := h.db.Unscoped().Delete(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel reservation: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Reservation cancelled"
	return res, nil
}
