package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessro/termspot/internal/config"
	errs "github.com/tessro/termspot/internal/errors"
)

func TestParseConfigValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    interface{}
		wantErr error
	}{
		{"session.search_limit", "12", 12, nil},
		{"session.playlist_limit", "ten", nil, errs.ErrInvalidConfig},
		{"session.default_device", "Kitchen", "Kitchen", nil},
		{"log.level", "debug", "debug", nil},
		{"defaults.volume", "50", nil, errs.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := parseConfigValue(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseConfigValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseConfigValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseConfigValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := config.Default()
	want.Session.DefaultDevice = "Kitchen"
	if err := writeConfigFile(path, want); err != nil {
		t.Fatalf("writeConfigFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.Session.DefaultDevice != "Kitchen" || got.Session.SearchLimit != 5 {
		t.Errorf("loaded session = %+v", got.Session)
	}
}

func TestSetConfigValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := writeConfigFile(path, config.Default()); err != nil {
		t.Fatal(err)
	}

	if err := setConfigValue(path, "session.default_device", "Kitchen"); err != nil {
		t.Fatalf("setConfigValue() error = %v", err)
	}
	if err := setConfigValue(path, "session.search_limit", "20"); err != nil {
		t.Fatalf("setConfigValue() error = %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := setConfigValue(path, "session.search_limit", "99"); !errors.Is(err, errs.ErrInvalidConfig) {
		t.Errorf("setConfigValue(99) error = %v, want %v", err, errs.ErrInvalidConfig)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("invalid value was written to the config file")
	}

	got, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.Session.DefaultDevice != "Kitchen" || got.Session.SearchLimit != 20 {
		t.Errorf("loaded session = %+v", got.Session)
	}
}

func TestSetConfigValueMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	if err := setConfigValue(path, "log.level", "debug"); !errors.Is(err, errs.ErrConfigNotFound) {
		t.Errorf("setConfigValue() error = %v, want %v", err, errs.ErrConfigNotFound)
	}
}

func TestConfigKeysHelp(t *testing.T) {
	help := configKeysHelp()
	for _, k := range configKeys {
		if !strings.Contains(help, k.name) {
			t.Errorf("help is missing %s", k.name)
		}
	}
}
