package notifier

import "time"

type Kind string

const (
	KindWelcome               Kind = "welcome"
	KindLoginAlert            Kind = "login_alert"
	KindConfirmEmail          Kind = "confirm_email"
	KindPasswordReset         Kind = "password_reset"
	KindRegistrationConfirmed Kind = "registration_confirmed"
	KindReservationReminder   Kind = "reservation_reminder"
)

// Notification is one outbound message. Recipient is the user's email
// address; the remaining fields are payload and only some apply per kind.
type Notification struct {
	Kind       Kind
	Recipient  string
	Username   string
	EventTitle string
	StartTime  time.Time
	Token      string
}

// Sink delivers a notification over one channel (email, Discord, ...).
// Sinks get at most one attempt per notification.
type Sink interface {
	Send(n Notification) error
}
