package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/oauth2"
)

// DefaultTokenFileName is the token file name under the termspot config dir.
const DefaultTokenFileName = "spotify_token.json"

// TokenStorage keeps the OAuth token in a JSON file readable only by the
// owner.
type TokenStorage struct {
	path string
}

// NewTokenStorage returns storage at path, or at
// $XDG_CONFIG_HOME/termspot/spotify_token.json when path is empty.
func NewTokenStorage(path string) (*TokenStorage, error) {
	if path != "" {
		return &TokenStorage{path: path}, nil
	}
	p, err := xdg.ConfigFile(filepath.Join("termspot", DefaultTokenFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token path: %w", err)
	}
	return &TokenStorage{path: p}, nil
}

// Save writes token through a temp file renamed over the old one.
func (s *TokenStorage) Save(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	// CreateTemp already uses 0600
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load reads the stored token. A missing file yields nil, nil.
func (s *TokenStorage) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	token := new(oauth2.Token)
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}
	return token, nil
}

// Delete removes the stored token. Deleting a missing token is not an error.
func (s *TokenStorage) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// Exists reports whether a token file is present.
func (s *TokenStorage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the token file location.
func (s *TokenStorage) Path() string {
	return s.path
}
