package domain

import "time"

// Session is the stored record of an account's single active session.
// Tokens are persisted as SHA-256 fingerprints, never raw. Expiry is a
// computed state: an expired row stays in the store until it is replaced
// by a new login or reaped, so validation can distinguish "expired" from
// "never existed".
type Session struct {
	ID          int64
	UserID      int64
	TokenHash   string
	RefreshHash string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// ValidAt reports whether the session is still live at t.
func (s Session) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// SessionCredentials carries the raw tokens back to the client. This is the
// only place the raw values exist outside the client; the store keeps
// fingerprints.
type SessionCredentials struct {
	SessionToken string `json:"session_token"`
	Expiration   int64  `json:"expiration"` // unix milliseconds
	RefreshToken string `json:"refresh_token"`
}
