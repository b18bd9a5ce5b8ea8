package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookBroadcaster(t *testing.T) {
	t.Run("posts subject and body as json", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected json content type, got %q", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("failed to decode payload: %v", err)
			}
		}))
		defer srv.Close()

		b := NewWebhookBroadcaster(srv.URL)
		err := b.SendBroadcast(context.Background(), "StockSentry Alert", "Alert for AAPL: something happened")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["subject"] != "StockSentry Alert" {
			t.Errorf("unexpected subject: %q", got["subject"])
		}
		if got["body"] != "Alert for AAPL: something happened" {
			t.Errorf("unexpected body: %q", got["body"])
		}
	})

	t.Run("non-2xx status is a channel error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		b := NewWebhookBroadcaster(srv.URL)
		err := b.SendBroadcast(context.Background(), "s", "b")

		var chanErr *ChannelError
		if !errors.As(err, &chanErr) {
			t.Fatalf("expected *ChannelError, got %T: %v", err, err)
		}
		if chanErr.Channel != ChannelBroadcast {
			t.Errorf("expected broadcast channel, got %s", chanErr.Channel)
		}
	})

	t.Run("unconfigured url is a channel error", func(t *testing.T) {
		b := NewWebhookBroadcaster("")
		err := b.SendBroadcast(context.Background(), "s", "b")

		var chanErr *ChannelError
		if !errors.As(err, &chanErr) {
			t.Fatalf("expected *ChannelError, got %T: %v", err, err)
		}
	})
}
