package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists signals the username or email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrListNotFound indicates the requested list does not exist.
	ErrListNotFound = errors.New("list not found")
	// ErrMovieNotFound indicates the requested collection entry does not exist.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrMovieExists signals the title is already present in the target list.
	ErrMovieExists = errors.New("movie already in this list")
	// ErrCacheMiss indicates no cached response exists for a request signature.
	ErrCacheMiss = errors.New("cache miss")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
