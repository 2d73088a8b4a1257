package store

import (
	"context"
	"database/sql"
	"fmt"

	"bingelist/shared/go/models"
)

// CreateReview records a rating for a collection entry. Ownership of the
// entry is checked by the caller.
func (s *Store) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	if review.Rating < 0 || review.Rating > 10 {
		return models.Review{}, fmt.Errorf("rating must be between 0 and 10")
	}

	var content sql.NullString
	if review.Content != "" {
		content = sql.NullString{String: review.Content, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (content, rating, movie_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, content, review.Rating, review.MovieID, review.UserID).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return models.Review{}, fmt.Errorf("insert review: %w", err)
	}

	return review, nil
}

// ReviewsByUser returns all of a user's reviews, newest first.
func (s *Store) ReviewsByUser(ctx context.Context, userID int64) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(content, ''), rating, movie_id, user_id, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Content, &review.Rating, &review.MovieID, &review.UserID, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// RatedMoviesByUser returns the user's reviews joined to their collection
// entries, restricted to entries with a known TMDB ID. This is the input
// to taste comparison; entries without an external ID cannot be matched
// across collections and are excluded at the source.
func (s *Store) RatedMoviesByUser(ctx context.Context, userID int64) ([]models.RatedMovie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.rating, m.id, m.tmdb_id, m.title, COALESCE(m.poster, ''), m.media_type, m.user_id, m.list_id
		FROM reviews r
		JOIN movies m ON r.movie_id = m.id
		WHERE r.user_id = $1 AND m.tmdb_id IS NOT NULL
		ORDER BY r.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select rated movies: %w", err)
	}
	defer rows.Close()

	var rated []models.RatedMovie
	for rows.Next() {
		var item models.RatedMovie
		var tmdbID sql.NullInt64
		var listID sql.NullInt64

		err := rows.Scan(&item.Rating, &item.Movie.ID, &tmdbID, &item.Movie.Title,
			&item.Movie.Poster, &item.Movie.MediaType, &item.Movie.UserID, &listID)
		if err != nil {
			return nil, fmt.Errorf("scan rated movie: %w", err)
		}

		if tmdbID.Valid {
			item.Movie.TMDBID = &tmdbID.Int64
		}
		if listID.Valid {
			item.Movie.ListID = &listID.Int64
		}
		rated = append(rated, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rated movies: %w", err)
	}

	return rated, nil
}

// ReviewsForTitle returns every review of a TMDB title across all local
// copies of it, regardless of owner.
func (s *Store) ReviewsForTitle(ctx context.Context, tmdbID int64, mediaType models.MediaType) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, COALESCE(r.content, ''), r.rating, r.movie_id, r.user_id, r.created_at
		FROM reviews r
		JOIN movies m ON r.movie_id = m.id
		WHERE m.tmdb_id = $1 AND m.media_type = $2
		ORDER BY r.created_at DESC, r.id DESC
	`, tmdbID, mediaType)
	if err != nil {
		return nil, fmt.Errorf("select title reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Content, &review.Rating, &review.MovieID, &review.UserID, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan title review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title reviews: %w", err)
	}

	return reviews, nil
}
