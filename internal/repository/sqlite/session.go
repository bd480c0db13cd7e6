package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// SessionDB implements repository.SessionStore over the shared pool.
//
// Sessions hold only the user ID — the principal is expanded to the full
// user row on every request, so stale profile copies can't exist.
type SessionDB struct {
	conn *sql.DB
}

var _ repository.SessionStore = (*SessionDB)(nil)

// Set stores a session row. The token is generated by the caller and
// must be unique; a collision is a programming error, not a conflict to
// handle.
func (db *SessionDB) Set(ctx context.Context, session *model.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		session.Token,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting session for user %d: %w", session.UserID, err)
	}
	return nil
}

// Get returns the session for a token. Unknown tokens and expired
// sessions both come back as apperror.ErrNotFound — to callers they are
// the same thing: no valid session.
func (db *SessionDB) Get(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := db.conn.QueryRowContext(ctx,
		`SELECT token, user_id, created_at, expires_at
		 FROM sessions WHERE token = ?`,
		token,
	).Scan(
		&s.Token,
		&s.UserID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("sesión", token)
		}
		return nil, fmt.Errorf("sqlite: getting session: %w", err)
	}

	if s.Expired(time.Now()) {
		// Lazily reap the row; losing the race to another request is fine.
		_, _ = db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return nil, apperror.NotFound("sesión", token)
	}

	return &s, nil
}

// Destroy removes a session. Destroying a token that no longer exists is
// a no-op — logout must be idempotent.
func (db *SessionDB) Destroy(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("sqlite: destroying session: %w", err)
	}
	return nil
}
