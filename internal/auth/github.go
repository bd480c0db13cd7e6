package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/mquintana/help-center/internal/apperror"
)

// githubUser is the portion of the GitHub /user API response we care
// about. GitHub returns a much larger object — we only unmarshal what
// we need.
type githubUser struct {
	Login string `json:"login"` // username, the display-name fallback
	Name  string `json:"name"`  // may be empty
	Email string `json:"email"` // primary public email; empty if hidden
}

// githubEmail is one entry of the GitHub /user/emails response.
type githubEmail struct {
	Email   string `json:"email"`
	Primary bool   `json:"primary"`
}

// GitHubProvider adapts GitHub's Authorization Code flow to the
// Provider interface.
//
// GitHub is the awkward provider: accounts can hide every email
// address, in which case neither /user nor /user/emails yields one.
// That case fails with apperror.MissingEmail — the flow must
// short-circuit before any store access, because without an email there
// is no identity key to resolve.
type GitHubProvider struct {
	config *oauth2.Config

	// apiBaseURL is https://api.github.com in production; tests point it
	// at an httptest server.
	apiBaseURL string
}

// NewGitHubProvider creates a GitHubProvider with the given OAuth app
// credentials. callbackURL must exactly match the callback configured
// on the GitHub OAuth App.
//
// Scopes:
//   - "read:user"   — public profile (login, name)
//   - "user:email"  — the email addresses, including non-public ones
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		apiBaseURL: "https://api.github.com",
	}
}

func (p *GitHubProvider) Name() string { return "github" }

// AuthURL returns the GitHub authorization URL for the given CSRF state.
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a normalized profile.
//
// Normalization rules:
//   - email: /user's primary email when public, otherwise the primary
//     (or first) entry from /user/emails; none at all → MissingEmail
//   - name: the profile name, falling back to the login when unset
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging GitHub OAuth code: %w", err)
	}

	// Client returns an *http.Client that attaches the bearer token to
	// every request.
	client := p.config.Client(ctx, oauthToken)

	var ghUser githubUser
	if err := p.getJSON(client, "/user", &ghUser); err != nil {
		return nil, err
	}

	email := ghUser.Email
	if email == "" {
		emails, err := p.listEmails(client)
		if err != nil {
			return nil, err
		}
		email = pickEmail(emails)
	}
	if email == "" {
		return nil, apperror.MissingEmail("GitHub")
	}

	name := ghUser.Name
	if name == "" {
		name = ghUser.Login
	}

	return &Profile{Name: name, Email: email}, nil
}

// listEmails calls /user/emails, which includes addresses the account
// keeps off the public profile (covered by the user:email scope).
func (p *GitHubProvider) listEmails(client *http.Client) ([]githubEmail, error) {
	var emails []githubEmail
	if err := p.getJSON(client, "/user/emails", &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (p *GitHubProvider) getJSON(client *http.Client, path string, out any) error {
	resp, err := client.Get(p.apiBaseURL + path)
	if err != nil {
		return fmt.Errorf("auth: calling GitHub %s API: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth: GitHub %s API returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("auth: decoding GitHub %s response: %w", path, err)
	}
	return nil
}

// pickEmail chooses the primary address, or the first one listed when
// none is marked primary.
func pickEmail(emails []githubEmail) string {
	for _, e := range emails {
		if e.Primary {
			return e.Email
		}
	}
	if len(emails) > 0 {
		return emails[0].Email
	}
	return ""
}
