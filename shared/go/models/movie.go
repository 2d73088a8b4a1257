package models

import "time"

// MediaType distinguishes movies from TV shows. TMDB assigns overlapping
// numeric IDs across the two namespaces, so the type always travels with
// the ID.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Movie is a user's local copy of an external title inside one of their
// lists. Distinct users (or distinct lists) hold independent rows for the
// same TMDB ID; nothing is shared or canonical.
type Movie struct {
	ID        int64     `json:"id"`
	TMDBID    *int64    `json:"tmdb_id,omitempty"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster,omitempty"`
	MediaType MediaType `json:"media_type"`
	UserID    int64     `json:"user_id"`
	ListID    *int64    `json:"list_id,omitempty"`
}

// MovieList is a named collection of movies owned by one user.
type MovieList struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated via JOIN when a single list is fetched.
	Movies []Movie `json:"movies,omitempty"`
}
