package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCachedResponseHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT response_json
		FROM api_cache
		WHERE url = $1
	`)).
		WithArgs("https://api.example.test/3/search/movie?query=heat").
		WillReturnRows(sqlmock.NewRows([]string{"response_json"}).AddRow(`{"results":[]}`))

	payload, err := s.CachedResponse(context.Background(), "https://api.example.test/3/search/movie?query=heat")
	if err != nil {
		t.Fatalf("CachedResponse: %v", err)
	}
	if string(payload) != `{"results":[]}` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCachedResponseMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT response_json`)).
		WithArgs("https://api.example.test/missing").
		WillReturnRows(sqlmock.NewRows([]string{"response_json"}))

	_, err = s.CachedResponse(context.Background(), "https://api.example.test/missing")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestSaveResponseUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO api_cache (url, response_json)
		VALUES ($1, $2)
		ON CONFLICT (url) DO UPDATE SET response_json = EXCLUDED.response_json
	`)).
		WithArgs("https://api.example.test/3/movie/949", `{"id":949}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.SaveResponse(context.Background(), "https://api.example.test/3/movie/949", []byte(`{"id":949}`)); err != nil {
		t.Fatalf("SaveResponse: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
