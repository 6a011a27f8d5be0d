package domain

import "time"

// Session is the locally persisted auth session. Tokens are opaque; the
// backend mints and validates them.
type Session struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchEntry is one remembered free-text query. The ID is a stable list
// key for the UI; re-searching an old query mints a fresh entry.
type SearchEntry struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searched_at"`
}
