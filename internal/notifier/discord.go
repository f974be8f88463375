package notifier

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"snowrent/internal/domain"
)

type channelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts new requests to the staff channel.
type Discord struct {
	session   channelSender
	channelID string
}

// NewDiscord opens a REST-only bot session; no gateway connection is made.
func NewDiscord(token, channelID string) (*Discord, error) {
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return &Discord{session: session, channelID: channelID}, nil
}

func (d *Discord) RentalRequestReceived(ctx context.Context, req domain.RentalRequest) error {
	if _, err := d.session.ChannelMessageSend(d.channelID, StaffMessage(req), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending discord message: %w", err)
	}
	return nil
}
