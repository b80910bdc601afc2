// Package notify sends goal announcements to a Discord channel.
package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier posts a message when the monthly earnings goal is reached.
// A nil notifier is valid and does nothing, so callers can wire it only when
// a bot token is configured.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (n *DiscordNotifier) GoalReached(_ context.Context, earned, goal float64) error {
	if n == nil {
		return nil
	}
	msg := fmt.Sprintf("🎯 Monthly goal reached: earned %.2f of %.2f", earned, goal)
	if _, err := n.session.ChannelMessageSend(n.channelID, msg); err != nil {
		return fmt.Errorf("failed to send goal notification: %w", err)
	}
	return nil
}

func (n *DiscordNotifier) Close() error {
	if n == nil || n.session == nil {
		return nil
	}
	return n.session.Close()
}
