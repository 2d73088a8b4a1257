package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bingelist/shared/go/models"
)

// Config holds settings for the TMDB client.
type Config struct {
	APIKey  string
	BaseURL string

	// RequestTimeout bounds each outbound call end to end.
	RequestTimeout time.Duration

	// MaxRetries and RetryBaseDelay control connection-failure retries.
	// HTTP error statuses are never retried.
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Client issues GET requests against the TMDB API and builds the request
// URLs that double as cache signatures.
type Client struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a TMDB API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay == 0 {
		baseDelay = 500 * time.Millisecond
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: baseDelay,
	}
}

// Get fetches a URL, retrying connection-level failures with exponential
// backoff. The status code of a completed response is returned as-is;
// classifying it is the caller's concern.
func (c *Client) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	var lastErr error
	delay := c.retryBaseDelay

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return 0, nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return 0, nil, fmt.Errorf("read response: %w", readErr)
			}
			return resp.StatusCode, body, nil
		}

		lastErr = err
		if attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return 0, nil, fmt.Errorf("send request: %w", lastErr)
}

// SearchURL builds the search signature for a query and kind.
func (c *Client) SearchURL(mediaType models.MediaType, query string) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	return fmt.Sprintf("%s/search/%s?%s", c.baseURL, mediaType, params.Encode())
}

// DetailsURL builds the details signature for a single title.
func (c *Client) DetailsURL(mediaType models.MediaType, tmdbID int64) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "credits")
	return fmt.Sprintf("%s/%s/%d?%s", c.baseURL, mediaType, tmdbID, params.Encode())
}

// NowPlayingURL builds the signature for the now-playing listing.
func (c *Client) NowPlayingURL(page int) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/movie/now_playing?%s", c.baseURL, params.Encode())
}
