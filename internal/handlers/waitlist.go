package handlers

import (
	"context"

	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/booking"
)

// WaitlistHandler serves the overflow pool ("additional places") routes.
type WaitlistHandler struct {
	coordinator *booking.Coordinator
	authHandler *auth.AuthHandler
}

func NewWaitlistHandler(coordinator *booking.Coordinator, authHandler *auth.AuthHandler) *WaitlistHandler {
	return &WaitlistHandler{coordinator: coordinator, authHandler: authHandler}
}

type WaitlistEntryResponse struct {
	Body struct {
		ID      uint `json:"id"`
		UserID  uint `json:"user_id"`
		EventID uint `json:"event_id"`
	}
}

func (h *WaitlistHandler) HandleRegister(ctx context.Context, input *EventRegistrationRequest) (*WaitlistEntryResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	entry, err := h.coordinator.RegisterWaitlist(ctx, input.EventID, userID)
	if err != nil {
		return nil, mapBookingError(err)
	}

	res := &WaitlistEntryResponse{}
	res.Body.ID = entry.ID
	res.Body.UserID = entry.UserID
	res.Body.EventID = entry.EventID
	return res, nil
}

func (h *WaitlistHandler) HandleCancel(ctx context.Context, input *EventRegistrationRequest) (*CancelRegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	if err := h.coordinator.CancelWaitlist(ctx, input.EventID, userID); err != nil {
		return nil, mapBookingError(err)
	}

	res := &CancelRegistrationResponse{}
	res.Body.Message = "Waitlist entry removed"
	return res, nil
}
