package client

import "encoding/json"

// User represents a Spotify user profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"`
}

// Device represents a Spotify Connect device.
type Device struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	IsActive         bool   `json:"is_active"`
	IsRestricted     bool   `json:"is_restricted"`
	IsPrivateSession bool   `json:"is_private_session"`
	VolumePercent    *int   `json:"volume_percent"` // Nullable
}

// DevicesResponse is the response from the devices endpoint.
type DevicesResponse struct {
	Devices []Device `json:"devices"`
}

// PlaybackState represents the current playback state.
// Item holds a Track or an Episode depending on CurrentlyPlayingType.
type PlaybackState struct {
	Device               Device          `json:"device"`
	Timestamp            int64           `json:"timestamp"`
	ProgressMS           *int            `json:"progress_ms"` // Nullable
	IsPlaying            bool            `json:"is_playing"`
	Item                 json.RawMessage `json:"item"`
	CurrentlyPlayingType string          `json:"currently_playing_type"` // track, episode, ad, unknown
	Context              *Context        `json:"context"`
}

// Track represents a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	DurationMS int      `json:"duration_ms"`
	Explicit   bool     `json:"explicit"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
}

// Episode represents a podcast episode.
type Episode struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	DurationMS int    `json:"duration_ms"`
	Show       Show   `json:"show"`
}

// Show represents the podcast an episode belongs to.
type Show struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Context represents a playback context (album, artist, playlist).
type Context struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// SearchResponse represents the response from a search query.
type SearchResponse struct {
	Tracks *Page[Track] `json:"tracks"`
}

// Page is a paged list of items.
type Page[T any] struct {
	Items  []T    `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Next   string `json:"next"`
}

// Playlist represents a Spotify playlist.
type Playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URI    string `json:"uri"`
	Public bool   `json:"public"`
	Owner  User   `json:"owner"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}
