package auth

import (
	"sync"

	"golang.org/x/oauth2"
)

// persistingSource saves refreshed tokens so the next run starts with them.
type persistingSource struct {
	base    oauth2.TokenSource
	storage *TokenStorage

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken == s.last {
		return tok, nil
	}
	s.last = tok.AccessToken

	if s.storage != nil {
		if err := s.storage.Save(tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
