package entity

import "time"

// Token is the server-side record of an issued JWT. One row is created per
// successful login; the roles guard consults it when signature verification
// fails.
type Token struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IsValid   bool      `json:"is_valid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
