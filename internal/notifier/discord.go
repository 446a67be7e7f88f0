package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordSink announces confirmed event registrations in the club's
// notifications channel. Other notification kinds are personal email matter
// and are skipped here.
type DiscordSink struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordSink(session *discordgo.Session, channelID string) *DiscordSink {
	return &DiscordSink{
		session:   session,
		channelID: channelID,
	}
}

func (s *DiscordSink) Send(n Notification) error {
	if n.Kind != KindRegistrationConfirmed {
		return nil
	}
	if s.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if s.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	message := fmt.Sprintf("🎉 **Registration Confirmed**\n**User:** %s\n**Event:** %s\n**Starts:** %s",
		n.Username,
		n.EventTitle,
		n.StartTime.Format("2006-01-02 15:04"),
	)

	_, err := s.session.ChannelMessageSend(s.channelID, message)
	return err
}
