package entity

import "time"

// Profile identifies a customer. Email is the natural key; the external
// user ID is optional and only present when checkout was initiated from
// an authenticated session.
type Profile struct {
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email"`
	Plan      Plan      `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}
