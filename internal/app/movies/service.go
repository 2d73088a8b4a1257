package movies

import (
	"context"
	"strings"

	"bingelist/shared/go/models"
)

// Store captures the persistence needs for collection workflows.
type Store interface {
	AddMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	MovieByID(ctx context.Context, id int64) (models.Movie, error)
	EnsureDefaultList(ctx context.Context, userID int64) (models.MovieList, error)
}

// Service coordinates collection-entry operations.
type Service interface {
	Add(ctx context.Context, userID int64, movie models.Movie) (models.Movie, error)
	Get(ctx context.Context, id int64) (models.Movie, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// Add places a movie in the user's collection. Entries without a target
// list land in the user's Watchlist, which is created on demand.
func (s *service) Add(ctx context.Context, userID int64, movie models.Movie) (models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return models.Movie{}, err
	}

	movie.UserID = userID
	movie.Poster = strings.TrimSpace(movie.Poster)
	// Some clients send the literal string "None" for a missing poster.
	if movie.Poster == "None" {
		movie.Poster = ""
	}

	if movie.ListID == nil {
		defaultList, err := s.store.EnsureDefaultList(ctx, userID)
		if err != nil {
			return models.Movie{}, err
		}
		movie.ListID = &defaultList.ID
	}

	return s.store.AddMovie(ctx, movie)
}

func (s *service) Get(ctx context.Context, id int64) (models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return models.Movie{}, err
	}
	return s.store.MovieByID(ctx, id)
}
