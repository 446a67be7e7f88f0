package notifier

import (
	"fmt"

	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/wneessen/go-mail"
)

// MailSink delivers notifications over SMTP.
type MailSink struct {
	client      *mail.Client
	from        string
	frontendURL string
}

func NewMailSink(cfg *config.Config) (*MailSink, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithSSL(),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &MailSink{client: client, from: cfg.EmailFrom, frontendURL: cfg.FrontendURL}, nil
}

func (s *MailSink) Send(n Notification) error {
	subject, body := s.render(n)

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return err
	}
	if err := msg.To(n.Recipient); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	return s.client.DialAndSend(msg)
}

func (s *MailSink) render(n Notification) (subject, body string) {
	switch n.Kind {
	case KindWelcome:
		return "Welcome to Rondo!",
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Thanks for signing up.</p><p>The Rondo team</p>", n.Username)
	case KindLoginAlert:
		return "New login to your account",
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Someone just signed in to your account. If this wasn't you, change your password immediately.</p>", n.Username)
	case KindConfirmEmail:
		return "Confirm your email",
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Confirm your email by following <a href=%q>this link</a>.</p>",
				n.Username, fmt.Sprintf("%s/confirm/%s", s.frontendURL, n.Token))
	case KindPasswordReset:
		return "Reset your password",
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Reset your password by following <a href=%q>this link</a>. The link expires in 30 minutes.</p>",
				n.Username, fmt.Sprintf("%s/reset-password/%s", s.frontendURL, n.Token))
	case KindReservationReminder:
		return "Complete your court reservation",
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Your hold on <b>%s</b> (%s) is waiting for payment. Unpaid holds are released automatically.</p>",
				n.Username, n.EventTitle, n.StartTime.Format("02.01.2006 15:04 MST"))
	case KindRegistrationConfirmed:
		return fmt.Sprintf("You're in: %s", n.EventTitle),
			fmt.Sprintf("<h1>Hi, %s!</h1><p>Your spot at <b>%s</b> is confirmed. Starts %s.</p>",
				n.Username, n.EventTitle, n.StartTime.Format("02.01.2006 15:04 MST"))
	default:
		return string(n.Kind), fmt.Sprintf("<p>Hi, %s!</p>", n.Username)
	}
}
