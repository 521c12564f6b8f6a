// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/pomomo-tui"
)

type Color int

const (
	ColorGreen     Color = 0x57f287
	ColorBlue      Color = 0x3498db
	ColorRed       Color = 0xed4245
	ColorLightGrey Color = 0xbcc0c0
)

func (c Color) ToInt() int {
	return int(c)
}

// ModeColor is the embed accent for the interval that starts next.
func ModeColor(m pomomo.Mode) Color {
	switch m {
	case pomomo.WorkMode:
		return ColorRed
	case pomomo.ShortBreakMode:
		return ColorGreen
	case pomomo.LongBreakMode:
		return ColorBlue
	default:
		return ColorLightGrey
	}
}

type webhookNotifier struct {
	cl       *discordgo.Session
	id       string
	token    string
	username string
	l        *log.Logger
}

var _ pomomo.Notifier = (*webhookNotifier)(nil)

func NewWebhookNotifier(cl *discordgo.Session, webhookURL, username string, logger *log.Logger) (*webhookNotifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return &webhookNotifier{
		cl:       cl,
		id:       id,
		token:    token,
		username: username,
		l:        logger,
	}, nil
}

func (w *webhookNotifier) Notify(ctx context.Context, n pomomo.Notification) error {
	params := WebhookParams(n)
	params.Username = w.username
	w.l.Debug("executing webhook", "webhookID", w.id, "finished", n.Finished)
	_, err := w.cl.WebhookExecute(w.id, w.token, false, params, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to execute discord webhook: %w", err)
	}
	return nil
}

// WebhookParams renders a Notification as a single-embed webhook message.
func WebhookParams(n pomomo.Notification) *discordgo.WebhookParams {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Finished", Value: n.Finished.String(), Inline: true},
		{Name: "Up next", Value: n.Next.String(), Inline: true},
		{Name: "Completed Pomodoros", Value: fmt.Sprint(n.CompletedWorkIntervals), Inline: true},
	}
	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       n.Message,
				Color:       ModeColor(n.Next).ToInt(),
				Fields:      fields,
				Description: fmt.Sprintf("%s complete.", n.Finished),
			},
		},
	}
}

// ParseWebhookURL extracts the id and token from
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", "", fmt.Errorf("invalid webhook url: unsupported scheme %q", u.Scheme)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("invalid webhook url: expected /api/webhooks/{id}/{token}")
}
