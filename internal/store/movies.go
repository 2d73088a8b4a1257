package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bingelist/shared/go/models"
)

// AddMovie records a new collection entry in the given list. A title may
// appear at most once per list; the same title in other lists or other
// users' collections is an independent copy.
func (s *Store) AddMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	movie.Title = strings.TrimSpace(movie.Title)
	if movie.Title == "" {
		return models.Movie{}, fmt.Errorf("title is required")
	}
	if movie.MediaType == "" {
		movie.MediaType = models.MediaTypeMovie
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM movies WHERE list_id = $1 AND title = $2)
	`, movie.ListID, movie.Title).Scan(&exists)
	if err != nil {
		return models.Movie{}, fmt.Errorf("check movie existence: %w", err)
	}
	if exists {
		return models.Movie{}, ErrMovieExists
	}

	var tmdbID sql.NullInt64
	if movie.TMDBID != nil {
		tmdbID = sql.NullInt64{Int64: *movie.TMDBID, Valid: true}
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO movies (tmdb_id, title, poster, media_type, user_id, list_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, tmdbID, movie.Title, movie.Poster, movie.MediaType, movie.UserID, movie.ListID).Scan(&movie.ID)
	if err != nil {
		return models.Movie{}, fmt.Errorf("insert movie: %w", err)
	}

	return movie, nil
}

// MovieByID returns a single collection entry.
func (s *Store) MovieByID(ctx context.Context, id int64) (models.Movie, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tmdb_id, title, COALESCE(poster, ''), media_type, user_id, list_id
		FROM movies
		WHERE id = $1
	`, id)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Movie{}, ErrMovieNotFound
		}
		return models.Movie{}, fmt.Errorf("lookup movie: %w", err)
	}
	return movie, nil
}

// MoviesByList returns the entries in one list in insertion order.
func (s *Store) MoviesByList(ctx context.Context, listID int64) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tmdb_id, title, COALESCE(poster, ''), media_type, user_id, list_id
		FROM movies
		WHERE list_id = $1
		ORDER BY id ASC
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("select movies: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

// MovieByExternalID returns the user's entry for a TMDB ID and kind, if any.
// The kind is part of the lookup because TMDB reuses numeric IDs across
// movies and TV shows.
func (s *Store) MovieByExternalID(ctx context.Context, userID, tmdbID int64, mediaType models.MediaType) (models.Movie, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tmdb_id, title, COALESCE(poster, ''), media_type, user_id, list_id
		FROM movies
		WHERE user_id = $1 AND tmdb_id = $2 AND media_type = $3
		ORDER BY id ASC
		LIMIT 1
	`, userID, tmdbID, mediaType)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Movie{}, ErrMovieNotFound
		}
		return models.Movie{}, fmt.Errorf("lookup movie by external id: %w", err)
	}
	return movie, nil
}

// SearchMoviesByTitle performs a case-insensitive substring search over all
// users' collection entries of the given kind, in scan order.
func (s *Store) SearchMoviesByTitle(ctx context.Context, query string, mediaType models.MediaType) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tmdb_id, title, COALESCE(poster, ''), media_type, user_id, list_id
		FROM movies
		WHERE title ILIKE $1 AND media_type = $2
		ORDER BY id ASC
	`, "%"+query+"%", mediaType)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var movie models.Movie
	var tmdbID sql.NullInt64
	var listID sql.NullInt64

	err := row.Scan(&movie.ID, &tmdbID, &movie.Title, &movie.Poster, &movie.MediaType, &movie.UserID, &listID)
	if err != nil {
		return models.Movie{}, err
	}

	if tmdbID.Valid {
		movie.TMDBID = &tmdbID.Int64
	}
	if listID.Valid {
		movie.ListID = &listID.Int64
	}
	return movie, nil
}

func collectMovies(rows *sql.Rows) ([]models.Movie, error) {
	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}
