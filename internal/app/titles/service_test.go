package titles

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingelist/internal/store"
	"bingelist/shared/go/models"
)

type stubFetcher struct {
	payload json.RawMessage
	lastURL string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) json.RawMessage {
	f.lastURL = url
	return f.payload
}

type stubStore struct {
	movie    models.Movie
	movieErr error

	reviews    []models.Review
	reviewsErr error

	movieLookups int
}

func (s *stubStore) MovieByExternalID(context.Context, int64, int64, models.MediaType) (models.Movie, error) {
	s.movieLookups++
	return s.movie, s.movieErr
}

func (s *stubStore) ReviewsForTitle(context.Context, int64, models.MediaType) ([]models.Review, error) {
	return s.reviews, s.reviewsErr
}

type stubURLs struct{}

func (stubURLs) DetailsURL(mediaType models.MediaType, tmdbID int64) string {
	return "details"
}

func (stubURLs) NowPlayingURL(page int) string {
	return "now-playing"
}

func TestTrendingUnavailableDegradesToEmpty(t *testing.T) {
	svc := New(&stubFetcher{}, &stubStore{}, stubURLs{})

	results, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTrendingCapped(t *testing.T) {
	items := make([]map[string]any, 20)
	for i := range items {
		items[i] = map[string]any{"id": i + 1, "title": "Movie"}
	}
	payload, err := json.Marshal(map[string]any{"results": items})
	require.NoError(t, err)

	svc := New(&stubFetcher{payload: payload}, &stubStore{}, stubURLs{})

	results, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, trendingLimit)
}

func TestDetailsUnavailable(t *testing.T) {
	svc := New(&stubFetcher{}, &stubStore{}, stubURLs{})

	_, err := svc.Details(context.Background(), 0, 949, models.MediaTypeMovie)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDetailsAnonymousSkipsViewerLookup(t *testing.T) {
	st := &stubStore{}
	svc := New(&stubFetcher{payload: []byte(`{"id":949,"title":"Heat"}`)}, st, stubURLs{})

	details, err := svc.Details(context.Background(), 0, 949, models.MediaTypeMovie)
	require.NoError(t, err)

	assert.Nil(t, details.ViewerMovie)
	assert.Zero(t, st.movieLookups)
	assert.NotNil(t, details.LocalReviews)
}

func TestDetailsAttachesViewerCopy(t *testing.T) {
	st := &stubStore{movie: models.Movie{ID: 10, Title: "Heat"}}
	svc := New(&stubFetcher{payload: []byte(`{"id":949,"title":"Heat"}`)}, st, stubURLs{})

	details, err := svc.Details(context.Background(), 1, 949, models.MediaTypeMovie)
	require.NoError(t, err)

	require.NotNil(t, details.ViewerMovie)
	assert.Equal(t, int64(10), details.ViewerMovie.ID)
}

func TestDetailsViewerWithoutCopy(t *testing.T) {
	st := &stubStore{movieErr: store.ErrMovieNotFound}
	svc := New(&stubFetcher{payload: []byte(`{"id":949,"title":"Heat"}`)}, st, stubURLs{})

	details, err := svc.Details(context.Background(), 1, 949, models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Nil(t, details.ViewerMovie)
}
