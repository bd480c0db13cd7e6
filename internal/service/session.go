package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/auth"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// SessionTTL is how long a login lasts. The cookie MaxAge and the
// sessions.expires_at row always agree on this value.
const SessionTTL = 7 * 24 * time.Hour

// SessionService is the serialize/deserialize pair of login:
//
//	Issue    — serialize: reduce a user to an opaque token in the store,
//	           handed to the browser as a signed cookie value
//	Resolve  — deserialize: cookie value → token → user_id → full user row
//	Destroy  — logout
//
// Resolve deliberately returns (nil, nil) instead of an error when the
// session is gone or the user was deleted out-of-band: that means
// "re-authenticate", and callers must never crash on it.
type SessionService struct {
	sessions repository.SessionStore
	users    repository.UserRepository
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(
	sessions repository.SessionStore,
	users repository.UserRepository,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		logger:   logger,
	}
}

var _ auth.SessionResolver = (*SessionService)(nil)

// Issue creates a session for the user and returns the signed cookie
// value. Only the user ID goes into the session row.
func (s *SessionService) Issue(ctx context.Context, user *model.User) (string, error) {
	now := time.Now()
	session := &model.Session{
		Token:     xid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		return "", fmt.Errorf("storing session for user %d: %w", user.ID, err)
	}

	signed, err := s.tokens.Sign(session.Token, SessionTTL)
	if err != nil {
		return "", fmt.Errorf("signing session for user %d: %w", user.ID, err)
	}

	s.logger.Info("session issued", slog.Int64("userID", user.ID))

	return signed, nil
}

// Resolve expands a cookie value back into the full user record.
//
// Returns (nil, nil) when the cookie doesn't verify, the session is
// unknown or expired, or the user row no longer exists. Only a real
// store failure comes back as an error.
func (s *SessionService) Resolve(ctx context.Context, cookieValue string) (*model.User, error) {
	token, err := s.tokens.Verify(cookieValue)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up session: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// User deleted out-of-band — the session points nowhere. Clean
			// it up and treat the browser as logged out.
			_ = s.sessions.Destroy(ctx, token)
			return nil, nil
		}
		return nil, fmt.Errorf("loading user %d for session: %w", session.UserID, err)
	}

	return user, nil
}

// Destroy ends the session behind a cookie value. Unverifiable cookies
// and already-destroyed sessions are no-ops: logout is idempotent.
func (s *SessionService) Destroy(ctx context.Context, cookieValue string) error {
	token, err := s.tokens.Verify(cookieValue)
	if err != nil {
		return nil
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
