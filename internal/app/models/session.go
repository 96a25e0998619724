package models

import "time"

// Session is the dashboard login session stored in Redis, keyed by the
// session id carried inside the caller's JWT.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
