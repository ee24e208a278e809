package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.termspotrc, $XDG_CONFIG_HOME/termspot/config.toml, ~/.config/termspot/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "".
func FindConfigFile() string {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SearchPaths returns the config file locations in priority order.
func SearchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(home, ".termspotrc"),
		filepath.Join(xdgConfig, "termspot", "config.toml"),
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Spotify. RSPOTIFY_* is read first so TERMSPOT_* wins when both are set.
	if v := os.Getenv("RSPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("RSPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv("RSPOTIFY_REDIRECT_URI"); v != "" {
		cfg.Spotify.RedirectURI = v
	}
	if v := os.Getenv("TERMSPOT_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("TERMSPOT_SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv("TERMSPOT_SPOTIFY_REDIRECT_URI"); v != "" {
		cfg.Spotify.RedirectURI = v
	}

	// Session
	if v := os.Getenv("TERMSPOT_SESSION_SEARCH_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Session.SearchLimit = i
		}
	}
	if v := os.Getenv("TERMSPOT_SESSION_PLAYLIST_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Session.PlaylistLimit = i
		}
	}
	if v := os.Getenv("TERMSPOT_SESSION_DEFAULT_DEVICE"); v != "" {
		cfg.Session.DefaultDevice = v
	}
	if v := os.Getenv("TERMSPOT_SESSION_EXIT_BYPASS"); v != "" {
		cfg.Session.ExitBypass = v
	}

	// Log
	if v := os.Getenv("TERMSPOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TERMSPOT_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
