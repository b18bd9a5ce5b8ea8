package notify

import "context"

// Broadcaster publishes one topic-style message to everyone following the
// alert feed, independent of per-user watchlist membership.
type Broadcaster interface {
	SendBroadcast(ctx context.Context, subject, body string) error
}

// EmailSender delivers one email alert to a single address.
type EmailSender interface {
	SendEmail(ctx context.Context, address, subject, body string) error
}

// SMSSender delivers one SMS alert to a single phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, body string) error
}
