package users

import (
	"context"

	"bingelist/shared/go/models"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, username, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
}

// Service exposes user profile workflows.
type Service interface {
	Create(ctx context.Context, username, email string) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, username, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.CreateUser(ctx, username, email)
}

func (s *service) Get(ctx context.Context, id int64) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.UserByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.UserByUsername(ctx, username)
}
