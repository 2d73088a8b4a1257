package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateUserSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	created := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, username, COALESCE(email, ''), COALESCE(avatar, ''), created_at
	`)).
		WithArgs("casey", "casey@example.test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "avatar", "created_at"}).
			AddRow(int64(1), "casey", "casey@example.test", "", created))

	user, err := s.CreateUser(context.Background(), " casey ", "casey@example.test")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != 1 || user.Username != "casey" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("casey", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreateUser(context.Background(), "casey", "")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserEmptyUsername(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.CreateUser(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty username")
	}
}

func TestUserByUsernameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE username = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "avatar", "created_at"}))

	_, err = s.UserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
