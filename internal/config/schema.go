package config

// Config is the root configuration structure.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
}

// SpotifyConfig holds Spotify API settings.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// SessionConfig holds interactive session settings.
type SessionConfig struct {
	SearchLimit   int    `toml:"search_limit"`
	PlaylistLimit int    `toml:"playlist_limit"`
	DefaultDevice string `toml:"default_device"`
	// ExitBypass confirms exit immediately when typed at the exit prompt.
	// Empty disables it.
	ExitBypass string `toml:"exit_bypass"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
