package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"farewatch/backend/internal/logging"
)

// Notifier delivers a price-drop alert to one channel.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
	Channel() string
}

// Alert is the payload delivered to notification channels.
type Alert struct {
	Airline     string
	Origin      string
	Destination string
	Price       float64
	Timestamp   string
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title     string              `json:"title"`
	Color     int                 `json:"color"`
	Fields    []discordEmbedField `json:"fields"`
	Timestamp string              `json:"timestamp,omitempty"`
}

type discordMessage struct {
	Content string         `json:"content"`
	Embeds  []discordEmbed `json:"embeds"`
}

// DiscordNotifier posts alerts to a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Client     *http.Client
}

var _ Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a webhook notifier.
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *DiscordNotifier) Channel() string {
	return "discord"
}

// Notify sends a price-drop embed. Discord acknowledges webhook posts with
// 204 No Content.
func (n *DiscordNotifier) Notify(ctx context.Context, alert Alert) error {
	if n.WebhookURL == "" {
		return fmt.Errorf("no Discord webhook URL configured")
	}

	message := discordMessage{
		Content: "Price Drop Alert!",
		Embeds: []discordEmbed{
			{
				Title: "Flight Price Drop Alert",
				Color: 0x00ff00,
				Fields: []discordEmbedField{
					{Name: "Airline", Value: alert.Airline, Inline: true},
					{Name: "Destination", Value: alert.Destination, Inline: true},
					{Name: "Price", Value: fmt.Sprintf("$%.2f", alert.Price), Inline: true},
				},
				Timestamp: alert.Timestamp,
			},
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode Discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build Discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	logging.Info("Discord notification sent",
		"airline", alert.Airline,
		"destination", alert.Destination,
		"price", alert.Price,
	)
	return nil
}
