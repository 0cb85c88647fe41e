// Package notify delivers the fixed check-in reminder through an
// outbound messaging webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ReminderText is the fixed motivational message; the transport carries
// nothing user-specific besides the destination.
const ReminderText = "🚀 Time for your daily check-in! Consistency builds your empire — claim your XP."

// Webhook posts the reminder to a sendText-style messaging endpoint
// authenticated by an api key header.
type Webhook struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewWebhook(url, apiKey string) *Webhook {
	return &Webhook{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendTextPayload struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

func (w *Webhook) Send(ctx context.Context, phoneNumber string) error {
	if w.URL == "" {
		return fmt.Errorf("webhook url not configured")
	}
	body, err := json.Marshal(sendTextPayload{Number: phoneNumber, Text: ReminderText})
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reminder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.APIKey != "" {
		req.Header.Set("apikey", w.APIKey)
	}

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("send reminder: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}
