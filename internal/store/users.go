package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bingelist/shared/go/models"
)

// CreateUser provisions a new account profile.
func (s *Store) CreateUser(ctx context.Context, username, email string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("username is required")
	}

	var emailVal sql.NullString
	if email = strings.TrimSpace(email); email != "" {
		emailVal = sql.NullString{String: email, Valid: true}
	}

	var user models.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, username, COALESCE(email, ''), COALESCE(avatar, ''), created_at
	`, username, emailVal).Scan(&user.ID, &user.Username, &user.Email, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// UserByUsername looks up a user profile by username.
func (s *Store) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, COALESCE(email, ''), COALESCE(avatar, ''), created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UserByID looks up a user profile by ID.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, COALESCE(email, ''), COALESCE(avatar, ''), created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.Avatar, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
