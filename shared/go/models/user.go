package models

import "time"

// User is an account profile. Credential and session handling live outside
// this service; handlers only ever see an already-resolved user ID.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
