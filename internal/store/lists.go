package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bingelist/shared/go/models"
)

// DefaultListName is the list every user's additions fall back to.
const DefaultListName = "Watchlist"

// CreateList creates a new movie list for the given user.
func (s *Store) CreateList(ctx context.Context, userID int64, list models.MovieList) (models.MovieList, error) {
	list.Name = strings.TrimSpace(list.Name)
	if list.Name == "" {
		return models.MovieList{}, fmt.Errorf("list name is required")
	}

	list.UserID = userID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO movie_lists (name, description, cover_url, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, list.Name, list.Description, list.CoverURL, userID).Scan(&list.ID, &list.CreatedAt)
	if err != nil {
		return models.MovieList{}, fmt.Errorf("insert list: %w", err)
	}

	return list, nil
}

// ListsByUser returns all lists owned by the given user.
func (s *Store) ListsByUser(ctx context.Context, userID int64) ([]models.MovieList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(cover_url, ''), user_id, created_at
		FROM movie_lists
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select lists: %w", err)
	}
	defer rows.Close()

	var lists []models.MovieList
	for rows.Next() {
		var list models.MovieList
		if err := rows.Scan(&list.ID, &list.Name, &list.Description, &list.CoverURL, &list.UserID, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	return lists, nil
}

// ListByID returns a single list with its movies.
func (s *Store) ListByID(ctx context.Context, id int64) (models.MovieList, error) {
	var list models.MovieList
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(cover_url, ''), user_id, created_at
		FROM movie_lists
		WHERE id = $1
	`, id).Scan(&list.ID, &list.Name, &list.Description, &list.CoverURL, &list.UserID, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MovieList{}, ErrListNotFound
		}
		return models.MovieList{}, fmt.Errorf("lookup list: %w", err)
	}

	movies, err := s.MoviesByList(ctx, id)
	if err != nil {
		return models.MovieList{}, err
	}
	list.Movies = movies

	return list, nil
}

// EnsureDefaultList returns the user's Watchlist, creating it if missing.
func (s *Store) EnsureDefaultList(ctx context.Context, userID int64) (models.MovieList, error) {
	var list models.MovieList
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(cover_url, ''), user_id, created_at
		FROM movie_lists
		WHERE user_id = $1 AND name = $2
		ORDER BY id ASC
		LIMIT 1
	`, userID, DefaultListName).Scan(&list.ID, &list.Name, &list.Description, &list.CoverURL, &list.UserID, &list.CreatedAt)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.MovieList{}, fmt.Errorf("lookup default list: %w", err)
	}

	return s.CreateList(ctx, userID, models.MovieList{Name: DefaultListName, Description: "My main collection"})
}
