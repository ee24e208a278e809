package cli

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/spotify/auth"
	"github.com/tessro/termspot/internal/spotify/client"
)

func authConfig() *auth.Config {
	return auth.NewConfig(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RedirectURI)
}

// spotifyTokenSource returns a refreshing token source over the stored token.
func spotifyTokenSource(ctx context.Context) (oauth2.TokenSource, *oauth2.Token, error) {
	if cfg.Spotify.ClientID == "" {
		return nil, nil, errs.ErrMissingClientID
	}

	storage, err := auth.NewTokenStorage("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}

	token, err := storage.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load token: %w", err)
	}
	if token == nil {
		return nil, nil, errs.ErrNotAuthenticated
	}

	return authConfig().TokenSource(ctx, token, storage), token, nil
}

// newSpotifyClient builds an authorized Web API client.
func newSpotifyClient(ctx context.Context) (*client.Client, error) {
	ts, _, err := spotifyTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return client.New(ts, client.WithLogger(logger)), nil
}
