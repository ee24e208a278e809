package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GetCurrentUser returns the current user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetDevices returns the user's available playback devices.
func (c *Client) GetDevices(ctx context.Context) ([]Device, error) {
	var resp DevicesResponse
	if err := c.Get(ctx, "/me/player/devices", &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// GetPlaybackState returns the current playback state, or nil if nothing
// is loaded on any device.
func (c *Client) GetPlaybackState(ctx context.Context) (*PlaybackState, error) {
	var raw json.RawMessage
	path := BuildURL("/me/player", map[string]string{"additional_types": "track,episode"})
	if err := c.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var state PlaybackState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to parse playback state: %w", err)
	}
	return &state, nil
}

// DecodeTrack decodes the playback item as a track.
func (s *PlaybackState) DecodeTrack() (*Track, error) {
	var t Track
	if err := json.Unmarshal(s.Item, &t); err != nil {
		return nil, fmt.Errorf("failed to parse track: %w", err)
	}
	return &t, nil
}

// DecodeEpisode decodes the playback item as an episode.
func (s *PlaybackState) DecodeEpisode() (*Episode, error) {
	var e Episode
	if err := json.Unmarshal(s.Item, &e); err != nil {
		return nil, fmt.Errorf("failed to parse episode: %w", err)
	}
	return &e, nil
}

// HasItem returns true if the state carries a non-null item.
func (s *PlaybackState) HasItem() bool {
	return len(s.Item) > 0 && string(s.Item) != "null"
}

// SearchTracks searches the catalog for tracks.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	params := map[string]string{
		"q":    query,
		"type": "track",
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var resp SearchResponse
	if err := c.Get(ctx, BuildURL("/search", params), &resp); err != nil {
		return nil, err
	}
	if resp.Tracks == nil {
		return nil, nil
	}
	return resp.Tracks.Items, nil
}

// GetPlaylists returns the current user's playlists.
func (c *Client) GetPlaylists(ctx context.Context, limit int) ([]Playlist, error) {
	params := make(map[string]string)
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var resp Page[Playlist]
	if err := c.Get(ctx, BuildURL("/me/playlists", params), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
