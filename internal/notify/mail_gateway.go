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

// MailGatewayClient sends email alerts through an HTTP mail gateway.
type MailGatewayClient struct {
	url        string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewMailGatewayClient creates a mail gateway email sender.
func NewMailGatewayClient(url, apiKey, from string) *MailGatewayClient {
	return &MailGatewayClient{
		url:    url,
		apiKey: apiKey,
		from:   from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendEmail submits one message to the gateway.
func (c *MailGatewayClient) SendEmail(ctx context.Context, address, subject, body string) error {
	if c == nil || c.url == "" {
		return &ChannelError{Channel: ChannelEmail, Recipient: address, Err: fmt.Errorf("mail gateway not configured")}
	}

	payload := map[string]string{
		"from":    c.from,
		"to":      address,
		"subject": subject,
		"body":    body,
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return &ChannelError{Channel: ChannelEmail, Recipient: address, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ChannelError{Channel: ChannelEmail, Recipient: address, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return &ChannelError{Channel: ChannelEmail, Recipient: address, Err: fmt.Errorf("gateway status=%d body=%s", resp.StatusCode, string(detail))}
	}
	return nil
}
