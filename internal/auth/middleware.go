package auth

import (
	"context"
	"net/http"

	"github.com/mquintana/help-center/internal/model"
)

// SessionCookie is the name of the cookie holding the signed session
// value.
const SessionCookie = "session"

// SessionResolver turns a session cookie value back into a full user
// record. A (nil, nil) result means "no valid session" — the caller
// treats the request as anonymous, never as an error.
// Implemented by service.SessionService.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) (*model.User, error)
}

// contextKey is an unexported type for context keys in this package, so
// no other package can read or shadow the user value.
type contextKey string

const userKey contextKey = "user"

// RequireAuth enforces a valid session on protected routes.
//
// It reads the session cookie, resolves it to a user, and stores the
// full user in the request context. Missing cookie, bad signature,
// expired session, and a user deleted out-of-band all end the same way:
// 401 and the request chain stops.
func RequireAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolveUser(r, sessions)
			if user == nil {
				http.Error(w, `{"error":"unauthorized","message":"Debes iniciar sesión."}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user to the context when a valid session is
// present but never blocks the request. Handlers on public routes check
// UserFromContext to distinguish anonymous from logged-in callers.
func OptionalAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := resolveUser(r, sessions); user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext retrieves the authenticated user from the request
// context. Returns (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// resolveUser reads the session cookie and resolves it. Any failure —
// no cookie, invalid signature, dead session — yields nil.
func resolveUser(r *http.Request, sessions SessionResolver) *model.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	user, err := sessions.Resolve(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}
