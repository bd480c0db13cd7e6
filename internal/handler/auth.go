package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/auth"
	"github.com/mquintana/help-center/internal/service"
)

// AuthHandler drives the OAuth login flow for every configured provider.
//
// Per provider it serves two routes:
//
//	GET /auth/{provider}          → redirect to the provider
//	GET /auth/{provider}/callback → code exchange, identity resolution,
//	                                session issue, redirect
//
// The callback NEVER answers with a JSON error. Every failure — denied
// authorization, state mismatch, missing email, store trouble — ends in
// a redirect to the login page. Success redirects to the settings page.
type AuthHandler struct {
	identity *service.IdentityService
	sessions *service.SessionService

	successURL string
	failureURL string

	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. successURL and failureURL are
// where the browser lands after the callback.
func NewAuthHandler(
	identity *service.IdentityService,
	sessions *service.SessionService,
	successURL, failureURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		sessions:   sessions,
		successURL: successURL,
		failureURL: failureURL,
		logger:     logger,
	}
}

// HandleLogin returns the handler that starts the flow for one provider.
//
// CSRF PROTECTION VIA STATE:
// A random state value goes into a short-lived HttpOnly cookie and into
// the provider redirect. The callback only proceeds when both match, so
// an attacker can't complete a flow this server didn't start.
func (h *AuthHandler) HandleLogin(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := xid.New().String()

		http.SetCookie(w, &http.Cookie{
			Name:     "oauth_state",
			Value:    state,
			Path:     "/",
			MaxAge:   600, // 10 minutes
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, provider.AuthURL(state), http.StatusTemporaryRedirect)
	}
}

// HandleCallback returns the handler that completes the flow for one
// provider.
//
// FLOW:
//  1. Validate the state parameter (CSRF check)
//  2. Exchange the code for a normalized (name, email) profile
//  3. Find-or-create the user by email
//  4. Issue a session, set the signed HttpOnly cookie
//  5. Redirect to the settings page
func (h *AuthHandler) HandleCallback(provider auth.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stateCookie, err := r.Cookie("oauth_state")
		if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
			h.logger.Warn("auth callback: state mismatch",
				slog.String("provider", provider.Name()),
			)
			h.failLogin(w, r)
			return
		}

		// The state cookie is single-use.
		http.SetCookie(w, &http.Cookie{
			Name:   "oauth_state",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		// The provider reports a denied authorization via ?error=.
		if errParam := r.URL.Query().Get("error"); errParam != "" {
			h.logger.Info("auth callback: authorization denied",
				slog.String("provider", provider.Name()),
				slog.String("error", errParam),
			)
			h.failLogin(w, r)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			h.failLogin(w, r)
			return
		}

		profile, err := provider.Exchange(r.Context(), code)
		if err != nil {
			// MissingEmail is an expected outcome for GitHub accounts that
			// hide every address; it short-circuits before any store access.
			level := slog.LevelError
			if errors.Is(err, apperror.ErrUpstreamAuth) {
				level = slog.LevelInfo
			}
			h.logger.Log(r.Context(), level, "auth callback: exchange failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()),
			)
			h.failLogin(w, r)
			return
		}

		user, err := h.identity.ResolveOrCreate(r.Context(), profile.Name, profile.Email)
		if err != nil {
			// A store failure during login is an authentication failure,
			// not a 500 — the browser goes back to the login page.
			h.logger.Error("auth callback: identity resolution failed",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()),
			)
			h.failLogin(w, r)
			return
		}

		cookieValue, err := h.sessions.Issue(r.Context(), user)
		if err != nil {
			h.logger.Error("auth callback: session issue failed",
				slog.Int64("userID", user.ID),
				slog.String("error", err.Error()),
			)
			h.failLogin(w, r)
			return
		}

		h.logger.Info("user authenticated",
			slog.Int64("userID", user.ID),
			slog.String("provider", provider.Name()),
		)

		// HttpOnly keeps the cookie away from page scripts; SameSite=Lax
		// still sends it on the top-level redirect that follows.
		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    cookieValue,
			Path:     "/",
			MaxAge:   int(service.SessionTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, h.successURL, http.StatusFound)
	}
}

// HandleLogout destroys the session and clears the cookie.
//
// HTTP: POST /auth/logout — state-changing, so never a GET.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Error("logout: destroying session failed", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada."})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/me — behind RequireAuth, which already resolved the
// session into a full user record.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Debes iniciar sesión."))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// failLogin sends the browser back to the login page. OAuth failures
// are only ever visible as this redirect.
func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.failureURL, http.StatusFound)
}
