package notifier

import (
	"context"
	"log"
	"time"

	"github.com/rondo-club/rondo-api/internal/models"
)

// Queue decouples notification delivery from request handling. Enqueue never
// blocks: when the buffer is full the notification is dropped with a log
// line. Delivery is at-most-once per sink; failures are logged and ignored.
type Queue struct {
	ch    chan Notification
	sinks []Sink
	done  chan struct{}
}

func NewQueue(size int, sinks ...Sink) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{
		ch:    make(chan Notification, size),
		sinks: sinks,
		done:  make(chan struct{}),
	}
}

// Start runs the dispatch loop until ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-q.ch:
			q.dispatch(n)
		}
	}
}

// Wait blocks until the dispatch loop has exited.
func (q *Queue) Wait() {
	<-q.done
}

func (q *Queue) Enqueue(n Notification) {
	select {
	case q.ch <- n:
	default:
		log.Printf("notification queue full, dropping %s for %s", n.Kind, n.Recipient)
	}
}

func (q *Queue) dispatch(n Notification) {
	for _, s := range q.sinks {
		if err := s.Send(n); err != nil {
			log.Printf("Failed to deliver %s notification to %s: %v", n.Kind, n.Recipient, err)
		}
	}
}

// RegistrationConfirmed satisfies booking.Notifier.
func (q *Queue) RegistrationConfirmed(user models.User, event models.Event) {
	q.Enqueue(Notification{
		Kind:       KindRegistrationConfirmed,
		Recipient:  user.Email,
		Username:   user.Username,
		EventTitle: event.Title,
		StartTime:  event.StartTime,
	})
}

func (q *Queue) Welcome(user models.User) {
	q.Enqueue(Notification{Kind: KindWelcome, Recipient: user.Email, Username: user.Username})
}

func (q *Queue) LoginAlert(user models.User) {
	q.Enqueue(Notification{Kind: KindLoginAlert, Recipient: user.Email, Username: user.Username})
}

func (q *Queue) ConfirmEmail(user models.User, token string) {
	q.Enqueue(Notification{Kind: KindConfirmEmail, Recipient: user.Email, Username: user.Username, Token: token})
}

func (q *Queue) PasswordReset(user models.User, token string) {
	q.Enqueue(Notification{Kind: KindPasswordReset, Recipient: user.Email, Username: user.Username, Token: token})
}

// ReservationReminder nudges the user to pay for a court hold before it is
// swept. slot carries the court name, start is the reserved hour.
func (q *Queue) ReservationReminder(user models.User, slot string, start time.Time) {
	q.Enqueue(Notification{
		Kind:       KindReservationReminder,
		Recipient:  user.Email,
		Username:   user.Username,
		EventTitle: slot,
		StartTime:  start,
	})
}
