package player

import (
	"context"
	"time"

	"github.com/tessro/termspot/internal/core"
	"github.com/tessro/termspot/internal/spotify/client"
)

// Player implements core.Player for Spotify.
type Player struct {
	client *client.Client
}

// New creates a new Spotify player.
func New(c *client.Client) *Player {
	return &Player{client: c}
}

// ListDevices returns the user's available playback devices.
func (p *Player) ListDevices(ctx context.Context) ([]core.Device, error) {
	devices, err := p.client.GetDevices(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]core.Device, len(devices))
	for i, d := range devices {
		result[i] = *convertDevice(&d)
	}
	return result, nil
}

// CurrentPlayback returns the current playback, or nil if nothing is loaded.
func (p *Player) CurrentPlayback(ctx context.Context) (*core.Playback, error) {
	state, err := p.client.GetPlaybackState(ctx)
	if err != nil {
		return nil, err
	}
	return convertPlayback(state)
}

// Resume resumes playback on deviceID, optionally from offset.
func (p *Player) Resume(ctx context.Context, deviceID string, offset *time.Duration) error {
	var opts *client.PlayOptions
	if offset != nil {
		ms := int(offset.Milliseconds())
		opts = &client.PlayOptions{PositionMS: &ms}
	}
	return p.client.Play(ctx, deviceID, opts)
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context, deviceID string) error {
	return p.client.Pause(ctx, deviceID)
}

// Seek seeks to offset in the current item.
func (p *Player) Seek(ctx context.Context, deviceID string, offset time.Duration) error {
	return p.client.Seek(ctx, int(offset.Milliseconds()), deviceID)
}

// Next skips to the next item.
func (p *Player) Next(ctx context.Context, deviceID string) error {
	return p.client.Next(ctx, deviceID)
}

// Previous skips to the previous item.
func (p *Player) Previous(ctx context.Context, deviceID string) error {
	return p.client.Previous(ctx, deviceID)
}

// Transfer moves playback to deviceID without starting it.
func (p *Player) Transfer(ctx context.Context, deviceID string) error {
	return p.client.TransferPlayback(ctx, deviceID, false)
}

// SearchTracks searches the catalog for tracks.
func (p *Player) SearchTracks(ctx context.Context, query string, limit int) ([]core.TrackResult, error) {
	tracks, err := p.client.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]core.TrackResult, len(tracks))
	for i, t := range tracks {
		results[i] = core.TrackResult{
			ID:      t.ID,
			URI:     t.URI,
			Name:    t.Name,
			Artists: artistNames(t.Artists),
		}
	}
	return results, nil
}

// ListPlaylists returns up to limit of the user's playlists.
func (p *Player) ListPlaylists(ctx context.Context, limit int) ([]core.PlaylistResult, error) {
	playlists, err := p.client.GetPlaylists(ctx, limit)
	if err != nil {
		return nil, err
	}

	results := make([]core.PlaylistResult, len(playlists))
	for i, pl := range playlists {
		results[i] = core.PlaylistResult{
			ID:         pl.ID,
			URI:        pl.URI,
			Name:       pl.Name,
			Owner:      pl.Owner.DisplayName,
			TrackCount: pl.Tracks.Total,
		}
	}
	return results, nil
}

// StartTrack starts playing a single track on deviceID.
func (p *Player) StartTrack(ctx context.Context, deviceID, trackID string) error {
	return p.client.Play(ctx, deviceID, &client.PlayOptions{
		URIs: []string{"spotify:track:" + trackID},
	})
}

// StartPlaylist starts playing a playlist from its first track on deviceID.
func (p *Player) StartPlaylist(ctx context.Context, deviceID, playlistID string) error {
	return p.client.Play(ctx, deviceID, &client.PlayOptions{
		ContextURI: "spotify:playlist:" + playlistID,
	})
}

// convertPlayback converts a Spotify playback state to a core playback.
func convertPlayback(state *client.PlaybackState) (*core.Playback, error) {
	if state == nil || !state.HasItem() {
		return nil, nil
	}

	pb := &core.Playback{IsPlaying: state.IsPlaying}
	if state.ProgressMS != nil {
		d := time.Duration(*state.ProgressMS) * time.Millisecond
		pb.Progress = &d
	}

	switch state.CurrentlyPlayingType {
	case "episode":
		ep, err := state.DecodeEpisode()
		if err != nil {
			return nil, err
		}
		pb.Item = convertEpisode(ep)
	default:
		t, err := state.DecodeTrack()
		if err != nil {
			return nil, err
		}
		pb.Item = convertTrack(t)
	}

	return pb, nil
}

// convertTrack converts a Spotify track to a core track.
func convertTrack(t *client.Track) *core.Track {
	if t == nil {
		return nil
	}

	return &core.Track{
		ID:       t.ID,
		URI:      t.URI,
		Name:     t.Name,
		Artists:  artistNames(t.Artists),
		Album:    t.Album.Name,
		Duration: time.Duration(t.DurationMS) * time.Millisecond,
	}
}

// convertEpisode converts a Spotify episode to a core episode.
func convertEpisode(e *client.Episode) *core.Episode {
	if e == nil {
		return nil
	}

	return &core.Episode{
		ID:       e.ID,
		URI:      e.URI,
		Name:     e.Name,
		Show:     e.Show.Name,
		Duration: time.Duration(e.DurationMS) * time.Millisecond,
	}
}

func artistNames(artists []client.Artist) []string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}

// convertDevice converts a Spotify device to a core device.
func convertDevice(d *client.Device) *core.Device {
	if d == nil {
		return nil
	}

	deviceType := core.DeviceTypeUnknown
	switch d.Type {
	case "Computer":
		deviceType = core.DeviceTypeComputer
	case "Smartphone":
		deviceType = core.DeviceTypePhone
	case "Speaker", "AVR", "CastAudio":
		deviceType = core.DeviceTypeSpeaker
	case "TV", "CastVideo":
		deviceType = core.DeviceTypeTV
	}

	return &core.Device{
		ID:       d.ID,
		Name:     d.Name,
		Type:     deviceType,
		IsActive: d.IsActive,
	}
}

// Ensure Player implements core.Player
var _ core.Player = (*Player)(nil)
