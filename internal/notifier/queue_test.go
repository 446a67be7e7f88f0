package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rondo-club/rondo-api/internal/models"
)

type recordingSink struct {
	mu   sync.Mutex
	sent []Notification
}

func (s *recordingSink) Send(n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *recordingSink) all() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.sent...)
}

func TestQueue_DeliversToSinks(t *testing.T) {
	sink := &recordingSink{}
	q := NewQueue(8, sink)

	ctx, cancel := context.WithCancel(context.Background())
	go q.Start(ctx)

	user := models.User{Username: "alice", Email: "alice@example.com"}
	event := models.Event{Title: "Open play", StartTime: time.Now().Add(time.Hour)}
	q.RegistrationConfirmed(user, event)

	deadline := time.After(2 * time.Second)
	for len(sink.all()) == 0 {
		select {
		case <-deadline:
			t.Fatal("notification never delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	q.Wait()

	sent := sink.all()
	if sent[0].Kind != KindRegistrationConfirmed {
		t.Errorf("expected kind %s, got %s", KindRegistrationConfirmed, sent[0].Kind)
	}
	if sent[0].Recipient != "alice@example.com" {
		t.Errorf("expected recipient alice@example.com, got %s", sent[0].Recipient)
	}
	if sent[0].EventTitle != "Open play" {
		t.Errorf("expected event title in payload, got %q", sent[0].EventTitle)
	}
}

// A full buffer must never block the caller; the overflow is dropped.
func TestQueue_FullBufferDoesNotBlock(t *testing.T) {
	q := NewQueue(1) // no worker running

	done := make(chan struct{})
	go func() {
		q.Welcome(models.User{Username: "a", Email: "a@example.com"})
		q.Welcome(models.User{Username: "b", Email: "b@example.com"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	if len(q.ch) != 1 {
		t.Errorf("expected 1 buffered notification, got %d", len(q.ch))
	}
}
