package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"bingelist/shared/go/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestAddMovieSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS(SELECT 1 FROM movies WHERE list_id = $1 AND title = $2)
	`)).
		WithArgs(int64(5), "Heat").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO movies (tmdb_id, title, poster, media_type, user_id, list_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`)).
		WithArgs(sqlmock.AnyArg(), "Heat", "/heat.jpg", models.MediaTypeMovie, int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))

	movie, err := s.AddMovie(context.Background(), models.Movie{
		TMDBID: int64Ptr(949),
		Title:  "  Heat  ",
		Poster: "/heat.jpg",
		UserID: 1,
		ListID: int64Ptr(5),
	})
	if err != nil {
		t.Fatalf("AddMovie: %v", err)
	}
	if movie.ID != 10 {
		t.Fatalf("unexpected id: %d", movie.ID)
	}
	if movie.Title != "Heat" {
		t.Fatalf("title not trimmed: %q", movie.Title)
	}
	if movie.MediaType != models.MediaTypeMovie {
		t.Fatalf("media type not defaulted: %q", movie.MediaType)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddMovieDuplicateTitleInList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(int64(5), "Heat").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err = s.AddMovie(context.Background(), models.Movie{
		Title:  "Heat",
		UserID: 1,
		ListID: int64Ptr(5),
	})
	if !errors.Is(err, ErrMovieExists) {
		t.Fatalf("expected ErrMovieExists, got %v", err)
	}
}

func TestAddMovieEmptyTitle(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.AddMovie(context.Background(), models.Movie{Title: "   ", UserID: 1}); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestSearchMoviesByTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	rows := sqlmock.NewRows([]string{"id", "tmdb_id", "title", "poster", "media_type", "user_id", "list_id"}).
		AddRow(int64(1), int64(949), "Heat", "/heat.jpg", "movie", int64(1), int64(5)).
		AddRow(int64(2), nil, "Heatwave", "", "movie", int64(2), nil)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, tmdb_id, title, COALESCE(poster, ''), media_type, user_id, list_id
		FROM movies
		WHERE title ILIKE $1 AND media_type = $2
		ORDER BY id ASC
	`)).
		WithArgs("%heat%", models.MediaTypeMovie).
		WillReturnRows(rows)

	movies, err := s.SearchMoviesByTitle(context.Background(), "heat", models.MediaTypeMovie)
	if err != nil {
		t.Fatalf("SearchMoviesByTitle: %v", err)
	}

	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].TMDBID == nil || *movies[0].TMDBID != 949 {
		t.Fatalf("unexpected tmdb id: %v", movies[0].TMDBID)
	}
	if movies[1].TMDBID != nil {
		t.Fatalf("expected nil tmdb id, got %v", *movies[1].TMDBID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMovieByExternalIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND tmdb_id = $2 AND media_type = $3`)).
		WithArgs(int64(1), int64(949), models.MediaTypeMovie).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tmdb_id", "title", "poster", "media_type", "user_id", "list_id"}))

	_, err = s.MovieByExternalID(context.Background(), 1, 949, models.MediaTypeMovie)
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}
