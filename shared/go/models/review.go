package models

import "time"

// Review is a user's rating of a movie in their own collection. Ratings use
// a 0-10 scale; content is optional free text.
type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty"`
	MovieID   int64     `json:"movie_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RatedMovie pairs a review with the collection entry it belongs to.
// Produced by the review/movie JOIN that feeds taste comparison.
type RatedMovie struct {
	Rating int   `json:"rating"`
	Movie  Movie `json:"movie"`
}
