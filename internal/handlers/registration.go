package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/booking"
	"github.com/rondo-club/rondo-api/internal/models"
)

type RegistrationHandler struct {
	coordinator *booking.Coordinator
	authHandler *auth.AuthHandler
}

func NewRegistrationHandler(coordinator *booking.Coordinator, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{coordinator: coordinator, authHandler: authHandler}
}

// mapBookingError translates coordinator errors into the HTTP statuses the
// frontend expects: 404 for missing things, 409 for conflicts.
func mapBookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrEventNotFound):
		return huma.Error404NotFound("Event not found")
	case errors.Is(err, booking.ErrNotRegistered):
		return huma.Error404NotFound("You are not registered for this event")
	case errors.Is(err, booking.ErrAlreadyRegistered):
		return huma.Error409Conflict("You are already registered for this event")
	case errors.Is(err, booking.ErrAlreadyOnWaitlist):
		return huma.Error409Conflict("You already hold a waitlist spot for this event")
	case errors.Is(err, booking.ErrEventFull):
		return huma.Error409Conflict("No places left")
	case errors.Is(err, booking.ErrEventStarted):
		return huma.Error409Conflict("Event has already started")
	default:
		return huma.Error500InternalServerError("Failed to process registration: " + err.Error())
	}
}

type EventRegistrationRequest struct {
	auth.AuthInput
	EventID uint `path:"event_id" doc:"Event to register for"`
}

type RegistrationResponse struct {
	Body struct {
		ID      uint `json:"id"`
		UserID  uint `json:"user_id"`
		EventID uint `json:"event_id"`
	}
}

func registrationResponse(r *models.Registration) *RegistrationResponse {
	res := &RegistrationResponse{}
	res.Body.ID = r.ID
	res.Body.UserID = r.UserID
	res.Body.EventID = r.EventID
	return res
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *EventRegistrationRequest) (*RegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	registration, err := h.coordinator.Register(ctx, input.EventID, userID)
	if err != nil {
		return nil, mapBookingError(err)
	}

	return registrationResponse(registration), nil
}

type CancelRegistrationResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *RegistrationHandler) HandleCancel(ctx context.Context, input *EventRegistrationRequest) (*CancelRegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	if err := h.coordinator.Cancel(ctx, input.EventID, userID); err != nil {
		return nil, mapBookingError(err)
	}

	res := &CancelRegistrationResponse{}
	res.Body.Message = "Registration cancelled"
	return res, nil
}

type MyRegistrationsRequest struct {
	auth.AuthInput
}

type MyRegistrationsResponse struct {
	Body struct {
		Items []models.Registration `json:"items"`
	}
}

func (h *RegistrationHandler) HandleMyRegistrations(ctx context.Context, input *MyRegistrationsRequest) (*MyRegistrationsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	registrations, err := h.coordinator.Registrations(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations: " + err.Error())
	}

	res := &MyRegistrationsResponse{}
	res.Body.Items = registrations
	return res, nil
}

func (h *RegistrationHandler) HandleMyRegistrationForEvent(ctx context.Context, input *EventRegistrationRequest) (*RegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	registration, err := h.coordinator.RegistrationFor(ctx, input.EventID, userID)
	if err != nil {
		if errors.Is(err, booking.ErrNotRegistered) {
			return nil, huma.Error404NotFound("You have no registration for this event")
		}
		return nil, huma.Error500InternalServerError("Failed to look up registration: " + err.Error())
	}

	return registrationResponse(registration), nil
}
