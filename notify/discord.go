/* discord.go
 * Contains the notifier that tells organisers about new sign-ups by posting embeds to a Discord webhook
 */

package notify

import (
	"context"
	"fmt"
	"time"

	"horizons-site/api/flow"
	"horizons-site/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	webhookUsername   = "Horizons"
	registrationColor = 0x2f80ed
	interestColor     = 0x27ae60
)

type Discord struct {
	session   WebhookSession
	webhookID string
	token     string
	now       func() time.Time
}

// Ensure Discord implements flow.Notifier
var _ flow.Notifier = (*Discord)(nil)

// NewDiscord creates a notifier for the given webhook. Webhooks need no bot token so the session is created without
// one.
func NewDiscord(webhookID string, token string) (*Discord, error) {
	if webhookID == "" || token == "" {
		return nil, fmt.Errorf("webhook id and token are required")
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewDiscordWithSession(session, webhookID, token), nil
}

// NewDiscordWithSession creates a notifier using an existing session
func NewDiscordWithSession(session WebhookSession, webhookID string, token string) *Discord {
	return &Discord{
		session:   session,
		webhookID: webhookID,
		token:     token,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (d *Discord) RegistrationReceived(ctx context.Context, registration store.Registration) error {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Name", Value: registration.FullName, Inline: true},
		{Name: "Email", Value: registration.Email, Inline: true},
	}
	optional := []struct{ name, value string }{
		{"School", registration.School},
		{"Graduation year", registration.GraduationYear},
		{"Traveling from", registration.TravelingFrom},
		{"Experience", registration.Experience},
	}
	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: f.name, Value: f.value, Inline: true})
		}
	}

	return d.send(ctx, &discordgo.MessageEmbed{
		Title:     "New registration",
		Color:     registrationColor,
		Fields:    fields,
		Timestamp: d.now().Format(time.RFC3339),
	})
}

func (d *Discord) InterestReceived(ctx context.Context, email string) error {
	return d.send(ctx, &discordgo.MessageEmbed{
		Title:       "New interest sign-up",
		Description: email,
		Color:       interestColor,
		Timestamp:   d.now().Format(time.RFC3339),
	})
}

func (d *Discord) send(ctx context.Context, embed *discordgo.MessageEmbed) error {
	params := &discordgo.WebhookParams{
		Username: webhookUsername,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}
	_, err := d.session.WebhookExecute(d.webhookID, d.token, false, params, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post %q to webhook: %w", embed.Title, err)
	}
	log.Ctx(ctx).Debug().Str("event", embed.Title).Msg("posted webhook notification")
	return nil
}
