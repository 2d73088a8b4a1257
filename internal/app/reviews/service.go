package reviews

import (
	"context"
	"errors"

	"bingelist/shared/go/models"
)

// ErrNotOwner indicates the movie being reviewed belongs to another user.
var ErrNotOwner = errors.New("can only review movies in your own collection")

// Store captures the persistence needs for review workflows.
type Store interface {
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	MovieByID(ctx context.Context, id int64) (models.Movie, error)
	ReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error)
}

// Service coordinates review creation and queries.
type Service interface {
	Create(ctx context.Context, userID int64, review models.Review) (models.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Review, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// Create records a review after verifying the movie is in the reviewer's
// own collection.
func (s *service) Create(ctx context.Context, userID int64, review models.Review) (models.Review, error) {
	if err := ctx.Err(); err != nil {
		return models.Review{}, err
	}

	movie, err := s.store.MovieByID(ctx, review.MovieID)
	if err != nil {
		return models.Review{}, err
	}
	if movie.UserID != userID {
		return models.Review{}, ErrNotOwner
	}

	review.UserID = userID
	return s.store.CreateReview(ctx, review)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ReviewsByUser(ctx, userID)
}
