package movies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingelist/shared/go/models"
)

type stubStore struct {
	added       models.Movie
	defaultList models.MovieList

	ensureCalls int
}

func (s *stubStore) AddMovie(_ context.Context, movie models.Movie) (models.Movie, error) {
	s.added = movie
	return movie, nil
}

func (s *stubStore) MovieByID(context.Context, int64) (models.Movie, error) {
	return s.added, nil
}

func (s *stubStore) EnsureDefaultList(context.Context, int64) (models.MovieList, error) {
	s.ensureCalls++
	return s.defaultList, nil
}

func TestAddDefaultsToWatchlist(t *testing.T) {
	st := &stubStore{defaultList: models.MovieList{ID: 7, Name: "Watchlist"}}
	svc := New(st)

	movie, err := svc.Add(context.Background(), 1, models.Movie{Title: "Heat"})
	require.NoError(t, err)

	require.NotNil(t, movie.ListID)
	assert.Equal(t, int64(7), *movie.ListID)
	assert.Equal(t, int64(1), movie.UserID)
	assert.Equal(t, 1, st.ensureCalls)
}

func TestAddKeepsExplicitList(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	listID := int64(3)
	movie, err := svc.Add(context.Background(), 1, models.Movie{Title: "Heat", ListID: &listID})
	require.NoError(t, err)

	require.NotNil(t, movie.ListID)
	assert.Equal(t, int64(3), *movie.ListID)
	assert.Zero(t, st.ensureCalls)
}

func TestAddScrubsNonePoster(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	listID := int64(3)
	movie, err := svc.Add(context.Background(), 1, models.Movie{Title: "Heat", Poster: "None", ListID: &listID})
	require.NoError(t, err)

	assert.Empty(t, movie.Poster)
}
