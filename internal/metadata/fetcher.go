package metadata

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Cache is the persistence hook for fetched payloads, keyed by the literal
// request URL.
type Cache interface {
	CachedResponse(ctx context.Context, url string) ([]byte, error)
	SaveResponse(ctx context.Context, url string, payload []byte) error
}

// Getter is the outbound HTTP collaborator.
type Getter interface {
	Get(ctx context.Context, url string) (status int, body []byte, err error)
}

// Fetcher resolves metadata requests cache-first and absorbs every failure
// mode: the only outcomes are a JSON payload or nil. Callers that get nil
// fall back to local data or report the upstream as unavailable.
type Fetcher struct {
	cache  Cache
	client Getter
}

// New wires a Fetcher from its collaborators.
func New(cache Cache, client Getter) *Fetcher {
	return &Fetcher{cache: cache, client: client}
}

// Fetch returns the payload for a request signature, or nil when no data
// is available. A corrupt cache entry counts as a miss and is overwritten
// once a live fetch succeeds. Cache write failures are logged and ignored;
// they never block a successful fetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) json.RawMessage {
	payload, err := f.cache.CachedResponse(ctx, url)
	if err == nil {
		if json.Valid(payload) {
			return payload
		}
		log.Warn().Str("url", url).Msg("corrupt cache entry, refetching")
	}

	status, body, err := f.client.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("metadata fetch failed")
		return nil
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("url", url).Msg("metadata fetch returned non-200")
		return nil
	}
	if !json.Valid(body) {
		log.Warn().Str("url", url).Msg("metadata response is not valid JSON")
		return nil
	}

	if err := f.cache.SaveResponse(ctx, url, body); err != nil {
		log.Error().Err(err).Str("url", url).Msg("cache save failed")
	}

	return body
}
