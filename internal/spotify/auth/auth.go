package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/tessro/termspot/internal/config"
)

const (
	// SpotifyAuthURL is the Spotify authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"

	// SpotifyTokenURL is the Spotify token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultRedirectURI is the default callback URI for the local server.
	DefaultRedirectURI = config.DefaultRedirectURI
)

// DefaultScopes are the Spotify scopes termspot needs.
var DefaultScopes = []string{
	"user-read-playback-state",
	"user-read-currently-playing",
	"user-modify-playback-state",
	"playlist-read-private",
}

// Config holds the OAuth configuration.
type Config struct {
	ClientID     string
	ClientSecret string // Optional with PKCE
	RedirectURI  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
}

// NewConfig creates a new OAuth configuration with defaults.
func NewConfig(clientID, clientSecret, redirectURI string) *Config {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Scopes:       DefaultScopes,
		AuthURL:      SpotifyAuthURL,
		TokenURL:     SpotifyTokenURL,
	}
}

// OAuth2 returns the equivalent oauth2.Config.
func (c *Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL builds the authorization URL carrying the PKCE challenge.
func (c *Config) AuthCodeURL(pkce *PKCE) string {
	return c.OAuth2().AuthCodeURL(pkce.State, oauth2.S256ChallengeOption(pkce.Verifier))
}

// Exchange trades an authorization code for a token.
func (c *Config) Exchange(ctx context.Context, code string, pkce *PKCE) (*oauth2.Token, error) {
	tok, err := c.OAuth2().Exchange(ctx, code, oauth2.VerifierOption(pkce.Verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return tok, nil
}

// TokenSource returns a source that refreshes tok as needed and writes every
// new token to storage.
func (c *Config) TokenSource(ctx context.Context, tok *oauth2.Token, storage *TokenStorage) oauth2.TokenSource {
	return &persistingSource{
		base:    c.OAuth2().TokenSource(ctx, tok),
		storage: storage,
		last:    tok.AccessToken,
	}
}
