// Package alerting implements the alert pipeline: the periodic scan driver,
// the alert-worthiness policy, and the multi-channel fan-out dispatcher.
package alerting

import (
	"context"
	"fmt"
	"strings"

	"stocksentry/internal/feed"
)

// Verdict is the outcome of evaluating one symbol's news batch.
type Verdict struct {
	Worthy  bool
	Message string
}

// Policy decides whether the current news for a symbol warrants an alert.
type Policy struct {
	feed     feed.Client
	keywords []string
}

// NewPolicy creates a policy over the given feed with the injected keyword
// set. Keywords are matched case-insensitively.
func NewPolicy(feedClient feed.Client, keywords []string) *Policy {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &Policy{feed: feedClient, keywords: lowered}
}

// Evaluate fetches the symbol's news and applies the keyword rule: worthy if
// any item's title+description contains any configured keyword. A fetch
// failure or an empty batch fails closed (not worthy) — a broken feed must
// never fire an alert. The fetch error is returned alongside the verdict so
// the caller can log it at unit granularity.
func (p *Policy) Evaluate(ctx context.Context, symbol string) (Verdict, error) {
	items, err := p.feed.FetchNews(ctx, symbol)
	if err != nil {
		return Verdict{}, err
	}

	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Description)
		for _, kw := range p.keywords {
			if strings.Contains(text, kw) {
				return Verdict{Worthy: true, Message: alertMessage(symbol)}, nil
			}
		}
	}
	return Verdict{}, nil
}

// alertMessage is deterministic in the symbol so repeated alerts for the same
// symbol can be deduplicated on message content later.
func alertMessage(symbol string) string {
	return fmt.Sprintf("News alert for %s: Significant event detected", symbol)
}
