package core

import "time"

// Playable is an item Spotify can have loaded on a device.
type Playable interface {
	Title() string
	Contributors() []string
}

// Track is a music track.
type Track struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Name     string        `json:"name"`
	Artists  []string      `json:"artists"`
	Album    string        `json:"album"`
	Duration time.Duration `json:"duration"`
}

// Title returns the track name.
func (t *Track) Title() string {
	return t.Name
}

// Contributors returns the artist names in credit order.
func (t *Track) Contributors() []string {
	return t.Artists
}

// Episode is a podcast episode. Episodes have no artists.
type Episode struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Name     string        `json:"name"`
	Show     string        `json:"show"`
	Duration time.Duration `json:"duration"`
}

// Title returns the episode name.
func (e *Episode) Title() string {
	return e.Name
}

// Contributors always returns an empty list.
func (e *Episode) Contributors() []string {
	return []string{}
}

// TrackResult is a track returned by a search.
type TrackResult struct {
	ID      string
	URI     string
	Name    string
	Artists []string
}

// PlaylistResult is one of the user's playlists.
type PlaylistResult struct {
	ID         string
	URI        string
	Name       string
	Owner      string
	TrackCount int
}

var (
	_ Playable = (*Track)(nil)
	_ Playable = (*Episode)(nil)
)
