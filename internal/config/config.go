// Package config loads the server configuration from the environment.
//
// Configuration comes from environment variables, optionally seeded from
// a .env file in the working directory (godotenv). The raw variables are
// parsed into the typed Config struct by caarlos0/env, so defaults and
// required-ness live in struct tags instead of scattered os.Getenv calls.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	Port   int    `env:"PORT" envDefault:"3006"`
	DBPath string `env:"DB_PATH" envDefault:"data/helpcenter.db"`

	// SessionSecret signs the session cookie. Must be long and random:
	//   SESSION_SECRET=$(openssl rand -hex 32)
	SessionSecret string `env:"SESSION_SECRET"`

	Google OAuthClient `envPrefix:"GOOGLE_"`
	GitHub OAuthClient `envPrefix:"GITHUB_"`

	// Where the browser lands after the OAuth callback. The defaults are
	// the static pages the site's front end serves.
	LoginSuccessURL string `env:"LOGIN_SUCCESS_URL" envDefault:"/settings/settings.html"`
	LoginFailureURL string `env:"LOGIN_FAILURE_URL" envDefault:"/inicio_sesion/inicio.html"`

	// AllowedOrigins feeds the CORS middleware. "*" mirrors the original
	// deployment where the front end is served from a separate host.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// OAuthClient is one provider's OAuth app credentials. CallbackURL may be
// left empty; the server fills in a localhost default based on the port.
type OAuthClient struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"`
}

// Configured reports whether credentials for this provider were supplied.
// Providers without credentials simply don't get routes registered.
func (c OAuthClient) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Load reads the .env file (if present) and parses the environment.
//
// A missing .env is not an error — production deployments set real
// environment variables and ship no file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.Google.CallbackURL == "" {
		cfg.Google.CallbackURL = fmt.Sprintf("http://localhost:%d/auth/google/callback", cfg.Port)
	}
	if cfg.GitHub.CallbackURL == "" {
		cfg.GitHub.CallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Port)
	}

	return cfg, nil
}
