// Package feed defines the news feed contract and its NewsAPI implementation.
package feed

import (
	"context"
	"fmt"
	"time"
)

// NewsItem is one article returned by the feed for a symbol. Items are
// ephemeral: they are evaluated and discarded, never persisted.
type NewsItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// FetchError represents a failed news fetch for a specific symbol.
// An empty result set is not an error.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch news for %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches candidate news items for a symbol.
type Client interface {
	// FetchNews returns the current news batch for the symbol. An empty
	// batch is a valid, non-error result; transport and decode failures
	// are reported as *FetchError.
	FetchNews(ctx context.Context, symbol string) ([]NewsItem, error)
}
