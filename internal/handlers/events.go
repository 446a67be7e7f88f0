package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/booking"
	"github.com/rondo-club/rondo-api/internal/models"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	coordinator *booking.Coordinator
	authHandler *auth.AuthHandler
}

func NewEventHandler(db *gorm.DB, coordinator *booking.Coordinator, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{db: db, coordinator: coordinator, authHandler: authHandler}
}

type EventPayload struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	MediaURL          string     `json:"media_url"`
	Location          string     `json:"location"`
	MaxMembers        int        `json:"max_members"`
	AdditionalMembers int        `json:"additional_members"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	RegistrationCount int64      `json:"registration_count"`
	WaitlistCount     int64      `json:"waitlist_count"`
	Tags              []string   `json:"tags"`
}

func (h *EventHandler) eventPayload(ctx context.Context, event *models.Event) (EventPayload, error) {
	primary, overflow, err := h.coordinator.PoolCounts(ctx, event.ID)
	if err != nil {
		return EventPayload{}, err
	}

	tags := make([]string, 0, len(event.Tags))
	for _, tag := range event.Tags {
		tags = append(tags, tag.Name)
	}

	return EventPayload{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		MediaURL:          event.MediaURL,
		Location:          event.Location,
		MaxMembers:        event.MaxMembers,
		AdditionalMembers: event.AdditionalMembers,
		StartTime:         event.StartTime,
		EndTime:           event.EndTime,
		RegistrationCount: primary,
		WaitlistCount:     overflow,
		Tags:              tags,
	}, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Title             string     `json:"title" required:"true"`
		Description       string     `json:"description"`
		MediaURL          string     `json:"media_url"`
		Location          string     `json:"location"`
		MaxMembers        int        `json:"max_members" required:"true" minimum:"0"`
		AdditionalMembers int        `json:"additional_members" minimum:"0"`
		StartTime         time.Time  `json:"start_time" required:"true"`
		EndTime           *time.Time `json:"end_time"`
	}
}

type EventResponse struct {
	Body EventPayload
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	event := models.Event{
		Title:             input.Body.Title,
		Description:       input.Body.Description,
		MediaURL:          input.Body.MediaURL,
		Location:          input.Body.Location,
		MaxMembers:        input.Body.MaxMembers,
		AdditionalMembers: input.Body.AdditionalMembers,
		StartTime:         input.Body.StartTime,
		EndTime:           input.Body.EndTime,
	}
	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event: " + err.Error())
	}

	payload, err := h.eventPayload(ctx, &event)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
	}
	return &EventResponse{Body: payload}, nil
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Body struct {
		Items []EventPayload `json:"items"`
		Total int            `json:"total"`
	}
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	var events []models.Event
	if err := h.db.Preload("Tags").Order("start_time asc").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events: " + err.Error())
	}

	res := &ListEventsResponse{}
	res.Body.Items = make([]EventPayload, 0, len(events))
	for i := range events {
		payload, err := h.eventPayload(ctx, &events[i])
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
		}
		res.Body.Items = append(res.Body.Items, payload)
	}
	res.Body.Total = len(res.Body.Items)
	return res, nil
}

type GetEventRequest struct {
	EventID uint `path:"event_id"`
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*EventResponse, error) {
	var event models.Event
	if err := h.db.Preload("Tags").First(&event, input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
	}

	payload, err := h.eventPayload(ctx, &event)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
	}
	return &EventResponse{Body: payload}, nil
}

type DeleteEventRequest struct {
	auth.AuthInput
	EventID uint `path:"event_id"`
}

// HandleDeleteEvent removes an event together with its registrations and
// waitlist entries.
func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Failed to load event: " + err.Error())
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("event_id = ?", event.ID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("event_id = ?", event.ID).Delete(&models.WaitlistEntry{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&event).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete event: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Event deleted"
	return res, nil
}

type AssignTagRequest struct {
	auth.AuthInput
	EventID uint `path:"event_id"`
	TagID   uint `path:"tag_id"`
}

func (h *EventHandler) HandleAssignTag(ctx context.Context, input *AssignTagRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}
	var tag models.Tag
	if err := h.db.First(&tag, input.TagID).Error; err != nil {
		return nil, huma.Error404NotFound("Tag not found")
	}

	if err := h.db.Model(&event).Association("Tags").Append(&tag); err != nil {
		return nil, huma.Error500InternalServerError("Failed to assign tag: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Tag assigned"
	return res, nil
}
