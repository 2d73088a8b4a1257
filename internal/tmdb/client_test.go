package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingelist/shared/go/models"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
	})
}

func TestGetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	status, body, err := testClient(srv.URL).Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGetErrorStatusNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	status, _, err := testClient(srv.URL).Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int32(1), calls.Load(), "a completed response must not be retried")
}

func TestGetRetriesConnectionFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	start := time.Now()
	_, _, err := testClient(url).Get(context.Background(), url)

	assert.Error(t, err)
	// Three retries with 1ms base delay: 1 + 2 + 4 ms of backoff.
	assert.GreaterOrEqual(t, time.Since(start), 7*time.Millisecond)
}

func TestGetContextCancelDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{
		BaseURL:        url,
		RequestTimeout: time.Second,
		MaxRetries:     5,
		RetryBaseDelay: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := client.Get(ctx, url)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Get did not honor context cancellation")
	}
}

func TestSearchURL(t *testing.T) {
	c := NewClient(Config{APIKey: "k", BaseURL: "https://api.example.test/3"})

	url := c.SearchURL(models.MediaTypeMovie, "heat of the night")

	assert.Equal(t, "https://api.example.test/3/search/movie?api_key=k&query=heat+of+the+night", url)
}

func TestDetailsURL(t *testing.T) {
	c := NewClient(Config{APIKey: "k", BaseURL: "https://api.example.test/3"})

	url := c.DetailsURL(models.MediaTypeTV, 60622)

	assert.Equal(t, "https://api.example.test/3/tv/60622?api_key=k&append_to_response=credits", url)
}

func TestNowPlayingURL(t *testing.T) {
	c := NewClient(Config{APIKey: "k", BaseURL: "https://api.example.test/3"})

	url := c.NowPlayingURL(1)

	assert.Equal(t, "https://api.example.test/3/movie/now_playing?api_key=k&language=en-US&page=1", url)
}
