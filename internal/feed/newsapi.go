package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// newsAPIResponse is the top-level NewsAPI "everything" response.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

// newsAPIArticle is a single article from NewsAPI.
type newsAPIArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

// NewsAPIClient fetches symbol news from newsapi.org.
type NewsAPIClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
}

// NewNewsAPIClient creates a NewsAPI-backed feed client.
func NewNewsAPIClient(httpClient *http.Client, baseURL, apiKey string) *NewsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &NewsAPIClient{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// FetchNews queries the "everything" endpoint for the symbol.
func (c *NewsAPIClient) FetchNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	endpoint := fmt.Sprintf("%s?q=%s&apiKey=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var decoded newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("decode response: %w", err)}
	}
	if decoded.Status != "" && decoded.Status != "ok" {
		return nil, &FetchError{Symbol: symbol, Err: fmt.Errorf("feed status %q", decoded.Status)}
	}

	items := make([]NewsItem, len(decoded.Articles))
	for i, a := range decoded.Articles {
		items[i] = NewsItem{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		}
	}
	return items, nil
}
