package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CachedResponse returns the stored payload for a request signature. The
// signature is the literal outbound URL; two URLs that differ only in query
// parameter order are distinct entries.
func (s *Store) CachedResponse(ctx context.Context, url string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT response_json
		FROM api_cache
		WHERE url = $1
	`, url).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("lookup cache entry: %w", err)
	}
	return []byte(payload), nil
}

// SaveResponse stores a payload under a request signature. An existing
// entry is replaced, so a corrupt payload heals on the next good fetch.
// Concurrent same-key writes resolve last-write-wins.
func (s *Store) SaveResponse(ctx context.Context, url string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_cache (url, response_json)
		VALUES ($1, $2)
		ON CONFLICT (url) DO UPDATE SET response_json = EXCLUDED.response_json
	`, url, string(payload))
	if err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}
