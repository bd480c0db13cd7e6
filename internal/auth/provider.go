package auth

import "context"

// Profile is the canonical identity an OAuth provider yields after
// normalization: a display name and the email that keys identity
// resolution. Provider-specific shapes (Google's userinfo document,
// GitHub's /user + /user/emails pair) never leave this package.
type Profile struct {
	Name  string
	Email string
}

// Provider is one OAuth identity provider in the authorization-code flow.
//
// Implementations must be pure protocol adapters: they talk to the
// provider's API and normalize the result, and they never touch the
// store. When a provider can't produce a usable email the adapter fails
// with apperror.MissingEmail before identity resolution ever runs.
type Provider interface {
	// Name is the provider identifier used in routes and log lines.
	Name() string

	// AuthURL returns the provider authorization URL carrying the CSRF
	// state value.
	AuthURL(state string) string

	// Exchange trades the callback code for a normalized profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}
