// Package auth implements the OAuth provider adapters and the signed
// session cookie.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User visits /auth/google (or /auth/github) → redirected to the provider
// 2. The provider calls back with a code
// 3. The adapter exchanges the code and normalizes the profile to (name, email)
// 4. The identity service finds-or-creates the user by email
// 5. A session row is written and its token — signed into a JWT — goes
//    into an HttpOnly cookie
// 6. On later requests, middleware verifies the cookie signature, looks
//    the token up in the session store, and loads the full user row
//
// The JWT here is NOT a stateless credential: its subject is an opaque
// session token that must still resolve in the store. The signature only
// proves the cookie was issued by this server (the same job the
// session-secret signing did in the original deployment).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "help-center"

// TokenService signs and verifies session cookie values.
//
// It holds the HMAC secret (SESSION_SECRET). The same secret must be
// used for both operations — rotate it and every session cookie becomes
// invalid, which is the safe failure mode.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Sign wraps a session token in a signed JWT valid for ttl.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, fine for a
// single-server deployment.
func (s *TokenService) Sign(sessionToken string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionToken,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session cookie: %w", err)
	}

	return signed, nil
}

// Verify parses a cookie value and returns the session token inside.
//
// jwt.WithValidMethods pins the algorithm to HS256 — without it an
// attacker could attempt an algorithm-confusion token.
func (s *TokenService) Verify(cookieValue string) (string, error) {
	token, err := jwt.ParseWithClaims(
		cookieValue,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session cookie expired")
		}
		return "", fmt.Errorf("auth: invalid session cookie: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session cookie claims")
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: session cookie has no subject")
	}

	return c.Subject, nil
}
