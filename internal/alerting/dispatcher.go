package alerting

import (
	"context"
	"sync"

	"stocksentry/internal/logger"
	"stocksentry/internal/models"
	"stocksentry/internal/notify"
)

// SubscriberIndex resolves the users tracking a symbol.
type SubscriberIndex interface {
	SubscribersOf(symbol string) ([]models.User, error)
}

// Ledger records one alert event per fan-out. It never fails visibly.
type Ledger interface {
	Record(symbol, message string)
}

// Metrics receives pipeline instrumentation. Implementations must be safe
// for concurrent use.
type Metrics interface {
	RecordCycle(seconds float64)
	RecordSymbolScanned()
	RecordAlertFired(symbol string)
	RecordSendFailure(channel string)
}

// Dispatcher delivers one alert to the broadcast channel and to every
// subscriber of the symbol, across every channel the subscriber has
// configured, with failure isolation per (user, channel) pair.
type Dispatcher struct {
	subscribers SubscriberIndex
	broadcaster notify.Broadcaster
	email       notify.EmailSender
	sms         notify.SMSSender
	ledger      Ledger
	metrics     Metrics
}

// NewDispatcher creates a dispatcher. metrics may be nil.
func NewDispatcher(subscribers SubscriberIndex, broadcaster notify.Broadcaster, email notify.EmailSender, sms notify.SMSSender, ledger Ledger, metrics Metrics) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		broadcaster: broadcaster,
		email:       email,
		sms:         sms,
		ledger:      ledger,
		metrics:     metrics,
	}
}

const broadcastSubject = "StockSentry Alert"

// FanOut sends the alert everywhere it needs to go. Channel failures are
// logged and counted but never interrupt the remaining sends, and the ledger
// write happens exactly once per call, after all sends were attempted.
func (d *Dispatcher) FanOut(ctx context.Context, symbol, message string) {
	// Topic broadcast goes out regardless of how many precise subscribers
	// exist, even zero.
	if err := d.broadcaster.SendBroadcast(ctx, broadcastSubject, "Alert for "+symbol+": "+message); err != nil {
		d.recordFailure(notify.ChannelBroadcast, "", err)
	}

	users, err := d.subscribers.SubscribersOf(symbol)
	if err != nil {
		// Subscribers unknown: the broadcast already went out and the event
		// still gets recorded.
		logger.Get().Errorw("failed to resolve subscribers",
			"symbol", symbol,
			"error", err,
		)
	}

	var wg sync.WaitGroup
	for _, user := range users {
		wg.Add(1)
		go func(u models.User) {
			defer wg.Done()
			d.notifyUser(ctx, u, symbol, message)
		}(user)
	}
	wg.Wait()

	d.ledger.Record(symbol, message)
	if d.metrics != nil {
		d.metrics.RecordAlertFired(symbol)
	}
}

// notifyUser attempts every channel the user has configured. A failure on
// one channel never suppresses the attempt on the other.
func (d *Dispatcher) notifyUser(ctx context.Context, user models.User, symbol, message string) {
	if user.Email != "" {
		subject := "StockSentry Alert: " + symbol
		body := "Alert for " + symbol + ": " + message
		if err := d.email.SendEmail(ctx, user.Email, subject, body); err != nil {
			d.recordFailure(notify.ChannelEmail, user.ID, err)
		}
	}
	if user.PhoneNumber != "" {
		body := "StockSentry Alert: " + symbol + " - " + message
		if err := d.sms.SendSMS(ctx, user.PhoneNumber, body); err != nil {
			d.recordFailure(notify.ChannelSMS, user.ID, err)
		}
	}
}

func (d *Dispatcher) recordFailure(channel notify.Channel, userID string, err error) {
	logger.Get().Warnw("channel send failed",
		"channel", channel,
		"user_id", userID,
		"error", err,
	)
	if d.metrics != nil {
		d.metrics.RecordSendFailure(string(channel))
	}
}
