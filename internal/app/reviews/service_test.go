package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingelist/shared/go/models"
)

type stubStore struct {
	movie models.Movie

	created models.Review
	reviews []models.Review
}

func (s *stubStore) CreateReview(_ context.Context, review models.Review) (models.Review, error) {
	s.created = review
	return review, nil
}

func (s *stubStore) MovieByID(context.Context, int64) (models.Movie, error) {
	return s.movie, nil
}

func (s *stubStore) ReviewsByUser(context.Context, int64) ([]models.Review, error) {
	return s.reviews, nil
}

func TestCreateOwnMovie(t *testing.T) {
	st := &stubStore{movie: models.Movie{ID: 10, UserID: 1}}
	svc := New(st)

	review, err := svc.Create(context.Background(), 1, models.Review{MovieID: 10, Rating: 9})
	require.NoError(t, err)

	assert.Equal(t, int64(1), review.UserID)
	assert.Equal(t, 9, st.created.Rating)
}

func TestCreateRejectsForeignMovie(t *testing.T) {
	st := &stubStore{movie: models.Movie{ID: 10, UserID: 2}}
	svc := New(st)

	_, err := svc.Create(context.Background(), 1, models.Review{MovieID: 10, Rating: 9})
	assert.ErrorIs(t, err, ErrNotOwner)
}
