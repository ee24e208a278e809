package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[spotify]
client_id = "abc"

[session]
default_device = "Kitchen"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Spotify.ClientID != "abc" {
		t.Errorf("ClientID = %q, want %q", cfg.Spotify.ClientID, "abc")
	}
	if cfg.Spotify.RedirectURI != "http://127.0.0.1:8888/callback" {
		t.Errorf("RedirectURI = %q", cfg.Spotify.RedirectURI)
	}
	if cfg.Session.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want 5", cfg.Session.SearchLimit)
	}
	if cfg.Session.PlaylistLimit != 10 {
		t.Errorf("PlaylistLimit = %d, want 10", cfg.Session.PlaylistLimit)
	}
	if cfg.Session.DefaultDevice != "Kitchen" {
		t.Errorf("DefaultDevice = %q, want Kitchen", cfg.Session.DefaultDevice)
	}
	if cfg.Session.ExitBypass != "" {
		t.Errorf("ExitBypass = %q, want empty", cfg.Session.ExitBypass)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[spotify\nclient_id = ")
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil, want parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[spotify]
client_id = "file"
`)

	t.Setenv("RSPOTIFY_CLIENT_ID", "legacy")
	t.Setenv("RSPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("TERMSPOT_SESSION_SEARCH_LIMIT", "12")
	t.Setenv("TERMSPOT_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Spotify.ClientID != "legacy" {
		t.Errorf("ClientID = %q, want legacy", cfg.Spotify.ClientID)
	}
	if cfg.Spotify.ClientSecret != "secret" {
		t.Errorf("ClientSecret = %q, want secret", cfg.Spotify.ClientSecret)
	}
	if cfg.Session.SearchLimit != 12 {
		t.Errorf("SearchLimit = %d, want 12", cfg.Session.SearchLimit)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}

	t.Setenv("TERMSPOT_SPOTIFY_CLIENT_ID", "native")
	cfg, err = LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Spotify.ClientID != "native" {
		t.Errorf("ClientID = %q, want native", cfg.Spotify.ClientID)
	}
}

func TestFindConfigFile(t *testing.T) {
	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if got := FindConfigFile(); got != "" {
		t.Errorf("FindConfigFile() = %q, want empty", got)
	}

	xdgPath := filepath.Join(xdg, "termspot", "config.toml")
	if err := os.MkdirAll(filepath.Dir(xdgPath), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdgPath, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != xdgPath {
		t.Errorf("FindConfigFile() = %q, want %q", got, xdgPath)
	}

	rcPath := filepath.Join(home, ".termspotrc")
	if err := os.WriteFile(rcPath, nil, 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(); got != rcPath {
		t.Errorf("FindConfigFile() = %q, want %q", got, rcPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(c *Config) {},
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "search limit too large",
			modify:  func(c *Config) { c.Session.SearchLimit = 51 },
			wantErr: "search_limit",
		},
		{
			name:    "playlist limit negative",
			modify:  func(c *Config) { c.Session.PlaylistLimit = -1 },
			wantErr: "playlist_limit",
		},
		{
			name:    "bypass collides with answer",
			modify:  func(c *Config) { c.Session.ExitBypass = "No" },
			wantErr: "exit_bypass",
		},
		{
			name:    "bypass with surrounding whitespace",
			modify:  func(c *Config) { c.Session.ExitBypass = " bye " },
			wantErr: "surrounding whitespace",
		},
		{
			name:    "redirect not http",
			modify:  func(c *Config) { c.Spotify.RedirectURI = "ftp://example.com/cb" },
			wantErr: "redirect_uri",
		},
		{
			name:   "custom bypass",
			modify: func(c *Config) { c.Session.ExitBypass = "bye" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
