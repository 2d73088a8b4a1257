package titles

import (
	"context"
	"encoding/json"
	"errors"

	"bingelist/internal/store"
	"bingelist/internal/tmdb"
	"bingelist/shared/go/models"
)

// ErrUnavailable indicates the metadata API produced no data and the
// request cannot be served from cache either.
var ErrUnavailable = errors.New("title data unavailable")

// trendingLimit caps how many now-playing titles the home view shows.
const trendingLimit = 12

// Fetcher resolves a request signature to a payload, or nil.
type Fetcher interface {
	Fetch(ctx context.Context, url string) json.RawMessage
}

// Store defines the persistence hooks for title detail views.
type Store interface {
	MovieByExternalID(ctx context.Context, userID, tmdbID int64, mediaType models.MediaType) (models.Movie, error)
	ReviewsForTitle(ctx context.Context, tmdbID int64, mediaType models.MediaType) ([]models.Review, error)
}

// URLBuilder produces outbound request signatures for title lookups.
type URLBuilder interface {
	DetailsURL(mediaType models.MediaType, tmdbID int64) string
	NowPlayingURL(page int) string
}

// Details bundles everything the title detail view needs: the normalized
// upstream payload, the viewer's own entry if they hold one, and local
// reviews across every copy of the title.
type Details struct {
	Title        models.TitleDetails `json:"title"`
	ViewerMovie  *models.Movie       `json:"viewer_movie,omitempty"`
	LocalReviews []models.Review     `json:"local_reviews"`
}

// Service serves trending listings and title detail views.
type Service interface {
	Trending(ctx context.Context) ([]models.TitleSummary, error)
	Details(ctx context.Context, viewerID, tmdbID int64, mediaType models.MediaType) (Details, error)
}

type service struct {
	fetcher Fetcher
	store   Store
	urls    URLBuilder
}

// New constructs a titles Service.
func New(fetcher Fetcher, store Store, urls URLBuilder) Service {
	return &service{fetcher: fetcher, store: store, urls: urls}
}

// Trending returns the top now-playing titles. An unreachable API degrades
// to an empty listing rather than an error.
func (s *service) Trending(ctx context.Context) ([]models.TitleSummary, error) {
	payload := s.fetcher.Fetch(ctx, s.urls.NowPlayingURL(1))
	if payload == nil {
		return []models.TitleSummary{}, nil
	}

	results, err := tmdb.ParseSearchResults(payload, models.MediaTypeMovie)
	if err != nil {
		return []models.TitleSummary{}, nil
	}
	if len(results) > trendingLimit {
		results = results[:trendingLimit]
	}
	return results, nil
}

// Details loads a normalized detail view. viewerID of zero means an
// anonymous request; the viewer's own entry is then skipped.
func (s *service) Details(ctx context.Context, viewerID, tmdbID int64, mediaType models.MediaType) (Details, error) {
	payload := s.fetcher.Fetch(ctx, s.urls.DetailsURL(mediaType, tmdbID))
	if payload == nil {
		return Details{}, ErrUnavailable
	}

	title, err := tmdb.ParseDetails(payload, mediaType)
	if err != nil {
		return Details{}, ErrUnavailable
	}

	details := Details{Title: title, LocalReviews: []models.Review{}}

	if viewerID != 0 {
		movie, err := s.store.MovieByExternalID(ctx, viewerID, tmdbID, mediaType)
		switch {
		case err == nil:
			details.ViewerMovie = &movie
		case errors.Is(err, store.ErrMovieNotFound):
			// Not in the viewer's collection; nothing to attach.
		default:
			return Details{}, err
		}
	}

	reviews, err := s.store.ReviewsForTitle(ctx, tmdbID, mediaType)
	if err != nil {
		return Details{}, err
	}
	if reviews != nil {
		details.LocalReviews = reviews
	}

	return details, nil
}
