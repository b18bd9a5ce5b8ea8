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

// WebhookBroadcaster posts alert broadcasts to a configured webhook endpoint.
type WebhookBroadcaster struct {
	url        string
	httpClient *http.Client
}

// NewWebhookBroadcaster creates a webhook-backed broadcaster.
func NewWebhookBroadcaster(url string) *WebhookBroadcaster {
	return &WebhookBroadcaster{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendBroadcast publishes subject and body as a JSON payload.
func (b *WebhookBroadcaster) SendBroadcast(ctx context.Context, subject, body string) error {
	if b == nil || b.url == "" {
		return &ChannelError{Channel: ChannelBroadcast, Err: fmt.Errorf("broadcast webhook not configured")}
	}

	payload := map[string]string{
		"subject": subject,
		"body":    body,
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(raw))
	if err != nil {
		return &ChannelError{Channel: ChannelBroadcast, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return &ChannelError{Channel: ChannelBroadcast, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return &ChannelError{Channel: ChannelBroadcast, Err: fmt.Errorf("webhook status=%d body=%s", resp.StatusCode, string(detail))}
	}
	return nil
}
