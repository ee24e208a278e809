package core

import (
	"context"
	"time"
)

// Player is the remote playback API the session controls.
// Every call is a single attempt; failures are returned as-is.
type Player interface {
	PlaybackReader
	Transferer

	ListDevices(ctx context.Context) ([]Device, error)

	// Resume resumes playback. A nil offset resumes without an explicit position.
	Resume(ctx context.Context, deviceID string, offset *time.Duration) error
	Pause(ctx context.Context, deviceID string) error
	Seek(ctx context.Context, deviceID string, offset time.Duration) error
	Next(ctx context.Context, deviceID string) error
	Previous(ctx context.Context, deviceID string) error

	SearchTracks(ctx context.Context, query string, limit int) ([]TrackResult, error)
	ListPlaylists(ctx context.Context, limit int) ([]PlaylistResult, error)
	StartTrack(ctx context.Context, deviceID, trackID string) error
	StartPlaylist(ctx context.Context, deviceID, playlistID string) error
}

// Transferer moves playback to another device.
type Transferer interface {
	Transfer(ctx context.Context, deviceID string) error
}
