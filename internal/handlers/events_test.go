package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rondo-club/rondo-api/internal/booking"
	"github.com/rondo-club/rondo-api/internal/models"
)

func TestCreateEvent_AdminOnly(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	handler := NewEventHandler(db, booking.NewCoordinator(db, nil), authHandler)

	admin := makeUser(t, db, "root", "admin")
	member := makeUser(t, db, "alice", "user")

	req := &CreateEventRequest{AuthInput: cookieFor(t, authHandler, member.ID)}
	req.Body.Title = "Friday game"
	req.Body.MaxMembers = 12
	req.Body.StartTime = time.Now().UTC().Add(72 * time.Hour)
	if _, err := handler.HandleCreateEvent(context.Background(), req); statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %v", err)
	}

	req.AuthInput = cookieFor(t, authHandler, admin.ID)
	resp, err := handler.HandleCreateEvent(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleCreateEvent failed: %v", err)
	}
	if resp.Body.Title != "Friday game" || resp.Body.RegistrationCount != 0 {
		t.Errorf("unexpected event payload: %+v", resp.Body)
	}
}

func TestGetEvent_CountsAndTags(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	coordinator := booking.NewCoordinator(db, nil)
	handler := NewEventHandler(db, coordinator, authHandler)

	admin := makeUser(t, db, "root", "admin")
	event := makeEvent(t, db, 10, 5, time.Now().UTC().Add(24*time.Hour))

	u1 := makeUser(t, db, "u1", "user")
	u2 := makeUser(t, db, "u2", "user")
	if _, err := coordinator.Register(context.Background(), event.ID, u1.ID); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := coordinator.RegisterWaitlist(context.Background(), event.ID, u2.ID); err != nil {
		t.Fatalf("waitlist registration failed: %v", err)
	}

	tag := models.Tag{Name: "football"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	if _, err := handler.HandleAssignTag(context.Background(), &AssignTagRequest{
		AuthInput: cookieFor(t, authHandler, admin.ID), EventID: event.ID, TagID: tag.ID,
	}); err != nil {
		t.Fatalf("HandleAssignTag failed: %v", err)
	}

	resp, err := handler.HandleGetEvent(context.Background(), &GetEventRequest{EventID: event.ID})
	if err != nil {
		t.Fatalf("HandleGetEvent failed: %v", err)
	}
	if resp.Body.RegistrationCount != 1 || resp.Body.WaitlistCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", resp.Body.RegistrationCount, resp.Body.WaitlistCount)
	}
	if len(resp.Body.Tags) != 1 || resp.Body.Tags[0] != "football" {
		t.Errorf("tags = %v, want [football]", resp.Body.Tags)
	}

	if _, err := handler.HandleGetEvent(context.Background(), &GetEventRequest{EventID: 999}); statusOf(t, err) != http.StatusNotFound {
		t.Errorf("expected 404 for unknown event, got %v", err)
	}
}

func TestDeleteEvent_RemovesLedger(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	coordinator := booking.NewCoordinator(db, nil)
	handler := NewEventHandler(db, coordinator, authHandler)

	admin := makeUser(t, db, "root", "admin")
	event := makeEvent(t, db, 10, 5, time.Now().UTC().Add(24*time.Hour))

	u1 := makeUser(t, db, "u1", "user")
	u2 := makeUser(t, db, "u2", "user")
	if _, err := coordinator.Register(context.Background(), event.ID, u1.ID); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := coordinator.RegisterWaitlist(context.Background(), event.ID, u2.ID); err != nil {
		t.Fatalf("waitlist registration failed: %v", err)
	}

	if _, err := handler.HandleDeleteEvent(context.Background(), &DeleteEventRequest{
		AuthInput: cookieFor(t, authHandler, admin.ID), EventID: event.ID,
	}); err != nil {
		t.Fatalf("HandleDeleteEvent failed: %v", err)
	}

	var regs, waits, events int64
	db.Model(&models.Registration{}).Count(&regs)
	db.Model(&models.WaitlistEntry{}).Count(&waits)
	db.Model(&models.Event{}).Count(&events)
	if regs != 0 || waits != 0 || events != 0 {
		t.Errorf("leftovers after delete: %d registrations, %d waitlist entries, %d events", regs, waits, events)
	}
}

func TestListEvents_OrderedByStart(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	handler := NewEventHandler(db, booking.NewCoordinator(db, nil), authHandler)

	later := makeEvent(t, db, 5, 0, time.Now().UTC().Add(48*time.Hour))
	sooner := makeEvent(t, db, 5, 0, time.Now().UTC().Add(12*time.Hour))

	resp, err := handler.HandleListEvents(context.Background(), &ListEventsRequest{})
	if err != nil {
		t.Fatalf("HandleListEvents failed: %v", err)
	}
	if resp.Body.Total != 2 {
		t.Fatalf("expected 2 events, got %d", resp.Body.Total)
	}
	if resp.Body.Items[0].ID != sooner.ID || resp.Body.Items[1].ID != later.ID {
		t.Errorf("expected start-time order, got %d then %d", resp.Body.Items[0].ID, resp.Body.Items[1].ID)
	}
}
