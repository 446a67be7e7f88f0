package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rondo-club/rondo-api/internal/booking"
)

func TestHandleRegister_FullFlow(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	coordinator := booking.NewCoordinator(db, nil)
	handler := NewRegistrationHandler(coordinator, authHandler)

	user := makeUser(t, db, "alice", "user")
	event := makeEvent(t, db, 10, 5, time.Now().UTC().Add(24*time.Hour))

	req := &EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, user.ID), EventID: event.ID}
	resp, err := handler.HandleRegister(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleRegister failed: %v", err)
	}
	if resp.Body.UserID != user.ID || resp.Body.EventID != event.ID {
		t.Errorf("unexpected registration payload: %+v", resp.Body)
	}

	// Registering twice conflicts.
	if _, err := handler.HandleRegister(context.Background(), req); statusOf(t, err) != http.StatusConflict {
		t.Errorf("expected 409 on duplicate registration, got %v", err)
	}

	// The registration is visible via my_registration.
	mine, err := handler.HandleMyRegistrationForEvent(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleMyRegistrationForEvent failed: %v", err)
	}
	if mine.Body.EventID != event.ID {
		t.Errorf("expected registration for event %d, got %d", event.ID, mine.Body.EventID)
	}

	// Cancel and verify it is gone.
	if _, err := handler.HandleCancel(context.Background(), req); err != nil {
		t.Fatalf("HandleCancel failed: %v", err)
	}
	if _, err := handler.HandleMyRegistrationForEvent(context.Background(), req); statusOf(t, err) != http.StatusNotFound {
		t.Errorf("expected 404 after cancel, got %v", err)
	}
}

func TestHandleRegister_UnknownEvent(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	handler := NewRegistrationHandler(booking.NewCoordinator(db, nil), authHandler)

	user := makeUser(t, db, "alice", "user")
	req := &EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, user.ID), EventID: 404}
	if _, err := handler.HandleRegister(context.Background(), req); statusOf(t, err) != http.StatusNotFound {
		t.Errorf("expected 404 for unknown event, got %v", err)
	}
}

func TestHandleRegister_Unauthorized(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	handler := NewRegistrationHandler(booking.NewCoordinator(db, nil), authHandler)

	req := &EventRegistrationRequest{EventID: 1}
	if _, err := handler.HandleRegister(context.Background(), req); statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %v", err)
	}
}

func TestWaitlist_OverflowAndPromotion(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	coordinator := booking.NewCoordinator(db, nil)
	regHandler := NewRegistrationHandler(coordinator, authHandler)
	waitHandler := NewWaitlistHandler(coordinator, authHandler)

	event := makeEvent(t, db, 1, 2, time.Now().UTC().Add(24*time.Hour))

	u1 := makeUser(t, db, "u1", "user")
	u2 := makeUser(t, db, "u2", "user")
	u3 := makeUser(t, db, "u3", "user")
	u4 := makeUser(t, db, "u4", "user")

	register := func(userID uint) error {
		_, err := regHandler.HandleRegister(context.Background(),
			&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, userID), EventID: event.ID})
		return err
	}

	if err := register(u1.ID); err != nil {
		t.Fatalf("u1 registration failed: %v", err)
	}
	// MaxMembers=1 still admits a second registrant.
	if err := register(u2.ID); err != nil {
		t.Fatalf("u2 registration failed: %v", err)
	}
	if err := register(u3.ID); statusOf(t, err) != http.StatusConflict {
		t.Fatalf("expected 409 for u3, got %v", err)
	}

	// u4 takes an additional place.
	if _, err := waitHandler.HandleRegister(context.Background(),
		&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u4.ID), EventID: event.ID}); err != nil {
		t.Fatalf("u4 waitlist registration failed: %v", err)
	}

	// u1 cancels; u4 is promoted off the waitlist.
	if _, err := regHandler.HandleCancel(context.Background(),
		&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u1.ID), EventID: event.ID}); err != nil {
		t.Fatalf("u1 cancel failed: %v", err)
	}

	promoted, err := regHandler.HandleMyRegistrationForEvent(context.Background(),
		&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u4.ID), EventID: event.ID})
	if err != nil {
		t.Fatalf("u4 was not promoted: %v", err)
	}
	if promoted.Body.UserID != u4.ID {
		t.Errorf("promotion credited to user %d, want %d", promoted.Body.UserID, u4.ID)
	}

	// u4's waitlist entry was consumed; withdrawing again is a 404.
	if _, err := waitHandler.HandleCancel(context.Background(),
		&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u4.ID), EventID: event.ID}); statusOf(t, err) != http.StatusNotFound {
		t.Errorf("expected 404 withdrawing a consumed waitlist entry, got %v", err)
	}
}

func TestWaitlist_SelfServiceWithdrawal(t *testing.T) {
	db := testDB(t)
	authHandler := testAuth(db)
	coordinator := booking.NewCoordinator(db, nil)
	waitHandler := NewWaitlistHandler(coordinator, authHandler)

	event := makeEvent(t, db, 0, 3, time.Now().UTC().Add(24*time.Hour))
	u1 := makeUser(t, db, "w1", "user")
	u2 := makeUser(t, db, "w2", "user")

	for _, u := range []uint{u1.ID, u2.ID} {
		if _, err := waitHandler.HandleRegister(context.Background(),
			&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u), EventID: event.ID}); err != nil {
			t.Fatalf("waitlist registration failed: %v", err)
		}
	}

	if _, err := waitHandler.HandleCancel(context.Background(),
		&EventRegistrationRequest{AuthInput: cookieFor(t, authHandler, u1.ID), EventID: event.ID}); err != nil {
		t.Fatalf("waitlist withdrawal failed: %v", err)
	}

	// Withdrawal must not have promoted anyone.
	primary, overflow, err := coordinator.PoolCounts(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("PoolCounts failed: %v", err)
	}
	if primary != 0 || overflow != 1 {
		t.Errorf("expected 0 primary / 1 overflow, got %d / %d", primary, overflow)
	}
}
