package store

import (
	"context"
	"fmt"
)

// schema is applied at startup. Statements are idempotent so repeated boots
// are safe; anything more involved than additive table creation belongs to
// operational tooling outside this service.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT UNIQUE,
		avatar TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS movie_lists (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		cover_url TEXT,
		user_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGSERIAL PRIMARY KEY,
		tmdb_id BIGINT,
		title TEXT NOT NULL,
		poster TEXT,
		media_type TEXT NOT NULL DEFAULT 'movie',
		user_id BIGINT NOT NULL REFERENCES users(id),
		list_id BIGINT REFERENCES movie_lists(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		content TEXT,
		rating INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		movie_id BIGINT NOT NULL REFERENCES movies(id),
		user_id BIGINT NOT NULL REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		sender_id BIGINT NOT NULL REFERENCES users(id),
		recipient_id BIGINT NOT NULL REFERENCES users(id),
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS api_cache (
		url TEXT PRIMARY KEY,
		response_json TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies (LOWER(title))`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_parties ON messages (sender_id, recipient_id)`,
}

// EnsureSchema creates any missing tables and indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
