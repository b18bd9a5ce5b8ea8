// Package notify defines the outbound alert channels and their HTTP gateway
// implementations. Every sender is best-effort: delivery means "accepted by
// the channel provider", and retry policy belongs to the provider, not here.
package notify

import "fmt"

// Channel identifies a delivery channel in logs and metrics.
type Channel string

const (
	ChannelBroadcast Channel = "broadcast"
	ChannelEmail     Channel = "email"
	ChannelSMS       Channel = "sms"
)

// ChannelError represents a failed send on a single channel for a single
// recipient. Failures are always contained at this granularity.
type ChannelError struct {
	Channel   Channel
	Recipient string
	Err       error
}

// Error implements the error interface.
func (e *ChannelError) Error() string {
	if e.Recipient == "" {
		return fmt.Sprintf("%s send failed: %v", e.Channel, e.Err)
	}
	return fmt.Sprintf("%s send to %s failed: %v", e.Channel, e.Recipient, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ChannelError) Unwrap() error { return e.Err }
