package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string][]byte
	saveErr error

	saved map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, saved: map[string][]byte{}}
}

func (c *fakeCache) CachedResponse(_ context.Context, url string) ([]byte, error) {
	payload, ok := c.entries[url]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return payload, nil
}

func (c *fakeCache) SaveResponse(_ context.Context, url string, payload []byte) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved[url] = payload
	return nil
}

type fakeGetter struct {
	status int
	body   []byte
	err    error

	calls int
}

func (g *fakeGetter) Get(_ context.Context, _ string) (int, []byte, error) {
	g.calls++
	return g.status, g.body, g.err
}

func TestFetchCacheHit(t *testing.T) {
	cache := newFakeCache()
	cache.entries["u"] = []byte(`{"ok":true}`)
	getter := &fakeGetter{status: 200, body: []byte(`{"fresh":true}`)}

	got := New(cache, getter).Fetch(context.Background(), "u")

	assert.JSONEq(t, `{"ok":true}`, string(got))
	assert.Zero(t, getter.calls, "cache hit must not reach the network")
}

func TestFetchCorruptCacheEntryRefetches(t *testing.T) {
	cache := newFakeCache()
	cache.entries["u"] = []byte(`{"truncated`)
	getter := &fakeGetter{status: 200, body: []byte(`{"fresh":true}`)}

	got := New(cache, getter).Fetch(context.Background(), "u")

	require.NotNil(t, got)
	assert.JSONEq(t, `{"fresh":true}`, string(got))
	assert.Equal(t, []byte(`{"fresh":true}`), cache.saved["u"], "good payload replaces the corrupt entry")
}

func TestFetchMissThenSuccess(t *testing.T) {
	cache := newFakeCache()
	getter := &fakeGetter{status: 200, body: []byte(`{"fresh":true}`)}

	got := New(cache, getter).Fetch(context.Background(), "u")

	require.NotNil(t, got)
	assert.Equal(t, 1, getter.calls)
	assert.Equal(t, []byte(`{"fresh":true}`), cache.saved["u"])
}

func TestFetchNon200NotCached(t *testing.T) {
	cache := newFakeCache()
	getter := &fakeGetter{status: 404, body: []byte(`{"status_message":"not found"}`)}

	got := New(cache, getter).Fetch(context.Background(), "u")

	assert.Nil(t, got)
	assert.Empty(t, cache.saved)
}

func TestFetchTransportError(t *testing.T) {
	cache := newFakeCache()
	getter := &fakeGetter{err: errors.New("connection refused")}

	got := New(cache, getter).Fetch(context.Background(), "u")

	assert.Nil(t, got)
	assert.Empty(t, cache.saved)
}

func TestFetchInvalidBody(t *testing.T) {
	cache := newFakeCache()
	getter := &fakeGetter{status: 200, body: []byte("<html>gateway error</html>")}

	got := New(cache, getter).Fetch(context.Background(), "u")

	assert.Nil(t, got)
	assert.Empty(t, cache.saved)
}

func TestFetchCacheSaveFailureStillReturnsPayload(t *testing.T) {
	cache := newFakeCache()
	cache.saveErr = errors.New("disk full")
	getter := &fakeGetter{status: 200, body: []byte(`{"fresh":true}`)}

	got := New(cache, getter).Fetch(context.Background(), "u")

	require.NotNil(t, got)
	assert.JSONEq(t, `{"fresh":true}`, string(got))
}
