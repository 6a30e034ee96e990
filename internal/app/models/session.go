package models

import "time"

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionEvent is broadcast whenever a session starts, ends or is extended.
// Session is nil for logout.
type SessionEvent struct {
	Type      string   `json:"type"`
	UserID    string   `json:"user_id"`
	SessionID string   `json:"session_id"`
	Session   *Session `json:"session"`
}
