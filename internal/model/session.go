package model

import "time"

// Session is the server-side principal record for a logged-in browser.
//
// It deliberately holds only the user ID, not a copy of the profile:
// every request that needs identity re-fetches the full user row, so a
// profile edit (or an out-of-band user deletion) is visible immediately.
// The browser never sees the raw token — it holds a signed cookie whose
// subject is this token.
type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
