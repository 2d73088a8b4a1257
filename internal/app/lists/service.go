package lists

import (
	"context"
	"errors"

	"bingelist/shared/go/models"
)

// ErrNotOwner indicates the list belongs to another user.
var ErrNotOwner = errors.New("list belongs to another user")

// Store captures the persistence needs for list workflows.
type Store interface {
	CreateList(ctx context.Context, userID int64, list models.MovieList) (models.MovieList, error)
	ListsByUser(ctx context.Context, userID int64) ([]models.MovieList, error)
	ListByID(ctx context.Context, id int64) (models.MovieList, error)
}

// Service coordinates list operations.
type Service interface {
	Create(ctx context.Context, userID int64, list models.MovieList) (models.MovieList, error)
	ListByUser(ctx context.Context, userID int64) ([]models.MovieList, error)
	Get(ctx context.Context, userID, listID int64) (models.MovieList, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, list models.MovieList) (models.MovieList, error) {
	if err := ctx.Err(); err != nil {
		return models.MovieList{}, err
	}
	return s.store.CreateList(ctx, userID, list)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]models.MovieList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListsByUser(ctx, userID)
}

// Get returns a list with its movies. Lists are private to their owner.
func (s *service) Get(ctx context.Context, userID, listID int64) (models.MovieList, error) {
	if err := ctx.Err(); err != nil {
		return models.MovieList{}, err
	}

	list, err := s.store.ListByID(ctx, listID)
	if err != nil {
		return models.MovieList{}, err
	}
	if list.UserID != userID {
		return models.MovieList{}, ErrNotOwner
	}
	return list, nil
}
