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

// SMSGatewayClient sends SMS alerts through an HTTP SMS gateway.
type SMSGatewayClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewSMSGatewayClient creates an SMS gateway sender.
func NewSMSGatewayClient(url, apiKey string) *SMSGatewayClient {
	return &SMSGatewayClient{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendSMS submits one message to the gateway.
func (c *SMSGatewayClient) SendSMS(ctx context.Context, phoneNumber, body string) error {
	if c == nil || c.url == "" {
		return &ChannelError{Channel: ChannelSMS, Recipient: phoneNumber, Err: fmt.Errorf("sms gateway not configured")}
	}

	payload := map[string]string{
		"to":   phoneNumber,
		"body": body,
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return &ChannelError{Channel: ChannelSMS, Recipient: phoneNumber, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ChannelError{Channel: ChannelSMS, Recipient: phoneNumber, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return &ChannelError{Channel: ChannelSMS, Recipient: phoneNumber, Err: fmt.Errorf("gateway status=%d body=%s", resp.StatusCode, string(detail))}
	}
	return nil
}
