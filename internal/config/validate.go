package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// Spotify caps search and playlist pages at 50 items.
const maxPageLimit = 50

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	return errors.Join(
		section("spotify", c.Spotify.Validate()),
		section("session", c.Session.Validate()),
		section("log", c.Log.Validate()),
	)
}

func section(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// Validate checks the redirect URI, which must be a plain http URL with a
// host the callback server can listen on.
func (c *SpotifyConfig) Validate() error {
	if c.RedirectURI == "" {
		return nil
	}
	u, err := url.Parse(c.RedirectURI)
	if err != nil {
		return fmt.Errorf("invalid redirect_uri: %w", err)
	}
	if u.Scheme != "http" || u.Host == "" {
		return fmt.Errorf("invalid redirect_uri: %s (must be a local http URL)", c.RedirectURI)
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	var errs []error
	limit := func(name string, v int) {
		if v < 1 || v > maxPageLimit {
			errs = append(errs, fmt.Errorf("%s must be between 1 and %d, got %d", name, maxPageLimit, v))
		}
	}
	limit("search_limit", c.SearchLimit)
	limit("playlist_limit", c.PlaylistLimit)

	if c.ExitBypass != strings.TrimSpace(c.ExitBypass) {
		errs = append(errs, fmt.Errorf("exit_bypass %q has surrounding whitespace", c.ExitBypass))
	} else if isConfirmAnswer(c.ExitBypass) {
		errs = append(errs, fmt.Errorf("exit_bypass %q collides with a confirmation answer", c.ExitBypass))
	}
	return errors.Join(errs...)
}

func isConfirmAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "n", "no":
		return true
	}
	return false
}

// Validate checks the level name against the logger's own parser.
func (c *LogConfig) Validate() error {
	if c.Level == "" {
		return nil
	}
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return nil
}
