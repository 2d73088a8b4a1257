package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bingelist/internal/tmdb"
	"bingelist/shared/go/models"
)

// Source reports where search results came from.
type Source string

const (
	// SourceLive means results came from the metadata API (or its cache).
	SourceLive Source = "live"
	// SourceLocal means the API was unreachable and results came from
	// locally stored collection entries.
	SourceLocal Source = "local"
	// SourceNone means neither path produced results.
	SourceNone Source = "none"
)

// Fetcher resolves a request signature to a payload, or nil when the
// upstream and cache both come up empty.
type Fetcher interface {
	Fetch(ctx context.Context, url string) json.RawMessage
}

// Store defines the persistence hooks for fallback search.
type Store interface {
	SearchMoviesByTitle(ctx context.Context, query string, mediaType models.MediaType) ([]models.Movie, error)
}

// URLBuilder produces the outbound request signature for a search.
type URLBuilder interface {
	SearchURL(mediaType models.MediaType, query string) string
}

// Result is a search outcome with its provenance.
type Result struct {
	Results []models.TitleSummary `json:"results"`
	Source  Source                `json:"source"`
}

// Service performs title search with local fallback.
type Service interface {
	Search(ctx context.Context, query string, mediaType models.MediaType) (Result, error)
}

type service struct {
	fetcher Fetcher
	store   Store
	urls    URLBuilder
}

// New constructs a search Service.
func New(fetcher Fetcher, store Store, urls URLBuilder) Service {
	return &service{fetcher: fetcher, store: store, urls: urls}
}

// Search queries the metadata API and, when that path yields nothing, falls
// back to substring search over locally stored movie entries. The fallback
// covers the movie kind only; TV titles have no local fallback yet.
func (s *service) Search(ctx context.Context, query string, mediaType models.MediaType) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Results: []models.TitleSummary{}, Source: SourceNone}, nil
	}
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		return Result{}, fmt.Errorf("unsupported media type %q", mediaType)
	}

	payload := s.fetcher.Fetch(ctx, s.urls.SearchURL(mediaType, query))
	if payload != nil {
		results, err := tmdb.ParseSearchResults(payload, mediaType)
		if err == nil {
			return Result{Results: results, Source: SourceLive}, nil
		}
		// An unparseable payload behaves like an unavailable API.
	}

	if mediaType != models.MediaTypeMovie {
		return Result{Results: []models.TitleSummary{}, Source: SourceNone}, nil
	}

	movies, err := s.store.SearchMoviesByTitle(ctx, query, models.MediaTypeMovie)
	if err != nil {
		return Result{}, fmt.Errorf("local fallback search: %w", err)
	}

	results := dedupeByExternalID(movies)
	source := SourceLocal
	if len(results) == 0 {
		source = SourceNone
	}
	return Result{Results: results, Source: source}, nil
}

// dedupeByExternalID keeps the first entry seen per TMDB ID. Entries with
// no external ID collapse to a single result the same way.
func dedupeByExternalID(movies []models.Movie) []models.TitleSummary {
	seen := make(map[int64]bool)
	seenNil := false

	results := make([]models.TitleSummary, 0, len(movies))
	for _, movie := range movies {
		var id int64
		if movie.TMDBID == nil {
			if seenNil {
				continue
			}
			seenNil = true
		} else {
			id = *movie.TMDBID
			if seen[id] {
				continue
			}
			seen[id] = true
		}

		results = append(results, models.TitleSummary{
			TMDBID:     id,
			Title:      movie.Title,
			PosterPath: movie.Poster,
			MediaType:  movie.MediaType,
		})
	}
	return results
}
