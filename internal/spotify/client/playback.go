package client

import (
	"context"
	"net/http"
	"strconv"
)

// PlayOptions is the body of a play request. A nil *PlayOptions resumes
// whatever is loaded.
type PlayOptions struct {
	ContextURI string   `json:"context_uri,omitempty"`
	URIs       []string `json:"uris,omitempty"`
	PositionMS *int     `json:"position_ms,omitempty"`
}

// command sends a player request targeted at deviceID. An empty deviceID
// leaves the choice of device to Spotify.
func (c *Client) command(ctx context.Context, method, action, deviceID string, params map[string]string, body interface{}) error {
	if deviceID != "" {
		if params == nil {
			params = make(map[string]string, 1)
		}
		params["device_id"] = deviceID
	}
	return c.request(ctx, method, BuildURL("/me/player/"+action, params), body, nil)
}

// Play starts or resumes playback.
func (c *Client) Play(ctx context.Context, deviceID string, opts *PlayOptions) error {
	// the endpoint rejects an empty body, even for a plain resume
	if opts == nil {
		opts = &PlayOptions{}
	}
	return c.command(ctx, http.MethodPut, "play", deviceID, nil, opts)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context, deviceID string) error {
	return c.command(ctx, http.MethodPut, "pause", deviceID, nil, nil)
}

// Next skips to the next item.
func (c *Client) Next(ctx context.Context, deviceID string) error {
	return c.command(ctx, http.MethodPost, "next", deviceID, nil, nil)
}

// Previous skips to the previous item.
func (c *Client) Previous(ctx context.Context, deviceID string) error {
	return c.command(ctx, http.MethodPost, "previous", deviceID, nil, nil)
}

// Seek moves the playhead of the current item to positionMs.
func (c *Client) Seek(ctx context.Context, positionMs int, deviceID string) error {
	params := map[string]string{"position_ms": strconv.Itoa(positionMs)}
	return c.command(ctx, http.MethodPut, "seek", deviceID, params, nil)
}

// TransferPlayback moves playback to deviceID. When play is false the
// current playing state is kept.
func (c *Client) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	body := struct {
		DeviceIDs []string `json:"device_ids"`
		Play      bool     `json:"play"`
	}{[]string{deviceID}, play}
	return c.Put(ctx, "/me/player", body, nil)
}
