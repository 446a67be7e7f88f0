package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/models"
	"github.com/rondo-club/rondo-api/internal/notifier"
	"github.com/rondo-club/rondo-api/internal/payments"
	"gorm.io/gorm"
)

type CourtReservationHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	payments    payments.LinkCreator
	queue       *notifier.Queue
	cfg         *config.Config
}

func NewCourtReservationHandler(db *gorm.DB, authHandler *auth.AuthHandler, linkCreator payments.LinkCreator, queue *notifier.Queue, cfg *config.Config) *CourtReservationHandler {
	return &CourtReservationHandler{db: db, authHandler: authHandler, payments: linkCreator, queue: queue, cfg: cfg}
}

type CourtReservationPayload struct {
	ID          uint      `json:"id"`
	CourtID     uint      `json:"court_id"`
	UserID      uint      `json:"user_id"`
	Date        time.Time `json:"date"`
	Hour        int       `json:"hour"`
	IsConfirmed bool      `json:"is_confirmed"`
}

func courtReservationPayload(r *models.CourtReservation) CourtReservationPayload {
	return CourtReservationPayload{
		ID:          r.ID,
		CourtID:     r.CourtID,
		UserID:      r.UserID,
		Date:        r.Date,
		Hour:        r.Hour,
		IsConfirmed: r.IsConfirmed,
	}
}

type ListReservationsByDateRequest struct {
	Date string `path:"date" doc:"Day to list, formatted 2006-01-02"`
}

type ListCourtReservationsResponse struct {
	Body struct {
		Items []CourtReservationPayload `json:"items"`
		Total int                       `json:"total"`
	}
}

func (h *CourtReservationHandler) HandleListByDate(ctx context.Context, input *ListReservationsByDateRequest) (*ListCourtReservationsResponse, error) {
	day, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid date, expected 2006-01-02")
	}

	var reservations []models.CourtReservation
	if err := h.db.Where("date = ?", day).Order("hour asc").Find(&reservations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reservations: " + err.Error())
	}

	return listResponse(reservations), nil
}

func listResponse(reservations []models.CourtReservation) *ListCourtReservationsResponse {
	res := &ListCourtReservationsResponse{}
	res.Body.Items = make([]CourtReservationPayload, 0, len(reservations))
	for i := range reservations {
		res.Body.Items = append(res.Body.Items, courtReservationPayload(&reservations[i]))
	}
	res.Body.Total = len(res.Body.Items)
	return res
}

type CreateTemporaryReservationRequest struct {
	auth.AuthInput
	Body struct {
		CourtID uint      `json:"court_id" required:"true"`
		Date    time.Time `json:"date" required:"true"`
		Hour    int       `json:"hour" required:"true" minimum:"0" maximum:"23"`
	}
}

type TemporaryReservationResponse struct {
	Body struct {
		Reservation CourtReservationPayload `json:"reservation"`
		PaymentURL  string                  `json:"payment_url,omitempty"`
	}
}

// HandleCreateTemporary places an unconfirmed hold on a court slot and
// returns a checkout link. The hold is released by the sweeper unless
// payment is confirmed within the TTL.
func (h *CourtReservationHandler) HandleCreateTemporary(ctx context.Context, input *CreateTemporaryReservationRequest) (*TemporaryReservationResponse, error) {
	user, err := h.authHandler.CurrentUser(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var court models.Court
	if err := h.db.First(&court, input.Body.CourtID).Error; err != nil {
		return nil, huma.Error404NotFound("Court not found")
	}
	if !court.IsAvailable {
		return nil, huma.Error409Conflict("Court is not available")
	}

	day := input.Body.Date.UTC().Truncate(24 * time.Hour)
	reservation := models.CourtReservation{
		CourtID: court.ID,
		UserID:  user.ID,
		Date:    day,
		Hour:    input.Body.Hour,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CourtReservation
		err := tx.Where("court_id = ? AND date = ? AND hour = ?", court.ID, day, input.Body.Hour).
			First(&existing).Error
		if err == nil {
			return huma.Error400BadRequest("This time slot is already taken")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
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

	res := &TemporaryReservationResponse{}
	res.Body.Reservation = courtReservationPayload(&reservation)

	if h.payments != nil {
		url, err := h.payments.CreatePaymentLink(ctx, payments.CreatePaymentInput{
			Amount:        court.Price,
			ReservationID: reservation.ID,
			ReturnURL:     h.cfg.FrontendURL + "/courts",
			Description:   fmt.Sprintf("%s, %s %02d:00", court.Name, day.Format("2006-01-02"), input.Body.Hour),
		})
		if err != nil {
			// The hold stands; the user can retry payment before the TTL.
			log.Printf("Failed to create payment link for reservation %d: %v", reservation.ID, err)
		} else {
			res.Body.PaymentURL = url
		}
	}

	if h.queue != nil {
		h.queue.ReservationReminder(*user, court.Name, day.Add(time.Duration(input.Body.Hour)*time.Hour))
	}

	return res, nil
}

type ConfirmReservationRequest struct {
	auth.AuthInput
	ReservationID uint   `path:"reservation_id"`
	Signature     string `query:"signature" doc:"Payment metadata signature" required:"false"`
}

type CourtReservationResponse struct {
	Body CourtReservationPayload
}

func (h *CourtReservationHandler) HandleConfirm(ctx context.Context, input *ConfirmReservationRequest) (*CourtReservationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var reservation models.CourtReservation
	if err := h.db.First(&reservation, input.ReservationID).Error; err != nil {
		return nil, huma.Error404NotFound("Reservation not found")
	}
	if reservation.UserID != userID {
		return nil, huma.Error403Forbidden("Access denied")
	}
	if reservation.IsConfirmed {
		return nil, huma.Error409Conflict("Payment already confirmed")
	}

	if h.cfg.PaymentSecretKey != "" {
		if !payments.Verify(reservation.ID, input.Signature, h.cfg.PaymentSecretKey) {
			return nil, huma.Error403Forbidden("Invalid payment signature")
		}
	}

	if err := h.db.Model(&reservation).Update("is_confirmed", true).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to confirm reservation: " + err.Error())
	}

	reservation.IsConfirmed = true
	return &CourtReservationResponse{Body: courtReservationPayload(&reservation)}, nil
}

type CancelReservationRequest struct {
	auth.AuthInput
	ReservationID uint `path:"reservation_id"`
}

func (h *CourtReservationHandler) HandleCancel(ctx context.Context, input *CancelReservationRequest) (*CourtReservationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var reservation models.CourtReservation
	if err := h.db.First(&reservation, input.ReservationID).Error; err != nil {
		return nil, huma.Error404NotFound("Reservation not found")
	}
	if reservation.UserID != userID {
		return nil, huma.Error403Forbidden("Access denied")
	}
	if reservation.IsConfirmed {
		return nil, huma.Error409Conflict("Payment already confirmed")
	}

	if err := h.db.Unscoped().Delete(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel reservation: " + err.Error())
	}

	return &CourtReservationResponse{Body: courtReservationPayload(&reservation)}, nil
}

type MyReservationsRequest struct {
	auth.AuthInput
}

func (h *CourtReservationHandler) HandleMyReservations(ctx context.Context, input *MyReservationsRequest) (*ListCourtReservationsResponse, error) {
	return h.listMine(ctx, input, true)
}

func (h *CourtReservationHandler) HandleMyTemporary(ctx context.Context, input *MyReservationsRequest) (*ListCourtReservationsResponse, error) {
	return h.listMine(ctx, input, false)
}

func (h *CourtReservationHandler) listMine(ctx context.Context, input *MyReservationsRequest, confirmed bool) (*ListCourtReservationsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var reservations []models.CourtReservation
	if err := h.db.Where("user_id = ? AND is_confirmed = ?", userID, confirmed).
		Order("date asc, hour asc").Find(&reservations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list reservations: " + err.Error())
	}

	return listResponse(reservations), nil
}

type AdminCreateReservationRequest struct {
	auth.AuthInput
	Body struct {
		Email   string    `json:"email" format:"email" required:"true" doc:"User to reserve for"`
		CourtID uint      `json:"court_id" required:"true"`
		Date    time.Time `json:"date" required:"true"`
		Hour    int       `json:"hour" required:"true" minimum:"0" maximum:"23"`
	}
}

// HandleCreateByAdmin books a slot for another user, identified by email,
// skipping payment. Admin only.
func (h *CourtReservationHandler) HandleCreateByAdmin(ctx context.Context, input *AdminCreateReservationRequest) (*CourtReservationResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var court models.Court
	if err := h.db.First(&court, input.Body.CourtID).Error; err != nil {
		return nil, huma.Error404NotFound("Court not found")
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Body.Email).First(&user).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	day := input.Body.Date.UTC().Truncate(24 * time.Hour)
	var existing models.CourtReservation
	if err := h.db.Where("court_id = ? AND date = ? AND hour = ?", court.ID, day, input.Body.Hour).
		First(&existing).Error; err == nil {
		return nil, huma.Error400BadRequest("This time slot is already taken")
	}

	reservation := models.CourtReservation{
		CourtID:     court.ID,
		UserID:      user.ID,
		Date:        day,
		Hour:        input.Body.Hour,
		IsConfirmed: true,
	}
	if err := h.db.Create(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create reservation: " + err.Error())
	}

	return &CourtReservationResponse{Body: courtReservationPayload(&reservation)}, nil
}

func (h *CourtReservationHandler) HandleCancelByAdmin(ctx context.Context, input *CancelReservationRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var reservation models.CourtReservation
	if err := h.db.First(&reservation, input.ReservationID).Error; err != nil {
		return nil, huma.Error404NotFound("Reservation not found")
	}

	if err := h.db.Unscoped().Delete(&reservation).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel reservation: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Reservation cancelled"
	return res, nil
}
