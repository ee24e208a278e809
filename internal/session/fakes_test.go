package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tessro/termspot/internal/core"
	errs "github.com/tessro/termspot/internal/errors"
)

// fakePlayer records every boundary call as a short string.
type fakePlayer struct {
	devices   []core.Device
	playback  *core.Playback
	tracks    []core.TrackResult
	playlists []core.PlaylistResult
	errs      map[string]error
	calls     []string
}

func (f *fakePlayer) record(method string, args ...interface{}) error {
	call := method
	if len(args) > 0 {
		call = fmt.Sprintf("%s%v", method, args)
	}
	f.calls = append(f.calls, call)
	return f.errs[method]
}

// remoteCalls returns recorded calls other than playback polling.
func (f *fakePlayer) remoteCalls() []string {
	var out []string
	for _, c := range f.calls {
		if c != "CurrentPlayback" {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakePlayer) ListDevices(context.Context) ([]core.Device, error) {
	if err := f.record("ListDevices"); err != nil {
		return nil, err
	}
	return f.devices, nil
}

func (f *fakePlayer) CurrentPlayback(context.Context) (*core.Playback, error) {
	if err := f.record("CurrentPlayback"); err != nil {
		return nil, err
	}
	return f.playback, nil
}

func (f *fakePlayer) Resume(_ context.Context, deviceID string, offset *time.Duration) error {
	if offset != nil {
		return f.record("Resume", deviceID, *offset)
	}
	return f.record("Resume", deviceID)
}

func (f *fakePlayer) Pause(_ context.Context, deviceID string) error {
	return f.record("Pause", deviceID)
}

func (f *fakePlayer) Seek(_ context.Context, deviceID string, offset time.Duration) error {
	return f.record("Seek", deviceID, offset)
}

func (f *fakePlayer) Next(_ context.Context, deviceID string) error {
	return f.record("Next", deviceID)
}

func (f *fakePlayer) Previous(_ context.Context, deviceID string) error {
	return f.record("Previous", deviceID)
}

func (f *fakePlayer) Transfer(_ context.Context, deviceID string) error {
	return f.record("Transfer", deviceID)
}

func (f *fakePlayer) SearchTracks(_ context.Context, query string, limit int) ([]core.TrackResult, error) {
	if err := f.record("SearchTracks", query, limit); err != nil {
		return nil, err
	}
	return f.tracks, nil
}

func (f *fakePlayer) ListPlaylists(_ context.Context, limit int) ([]core.PlaylistResult, error) {
	if err := f.record("ListPlaylists", limit); err != nil {
		return nil, err
	}
	return f.playlists, nil
}

func (f *fakePlayer) StartTrack(_ context.Context, deviceID, trackID string) error {
	return f.record("StartTrack", deviceID, trackID)
}

func (f *fakePlayer) StartPlaylist(_ context.Context, deviceID, playlistID string) error {
	return f.record("StartPlaylist", deviceID, playlistID)
}

// scriptedReader returns its lines in order, then io.EOF.
type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// scriptedSelector picks options by label. An unknown label or an
// exhausted script cancels.
type scriptedSelector struct {
	picks []string
	shown [][]string
}

func (s *scriptedSelector) Select(_ string, options []string) (int, error) {
	s.shown = append(s.shown, options)
	if len(s.picks) == 0 {
		return 0, errs.ErrSelectionCancelled
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	for i, o := range options {
		if o == pick {
			return i, nil
		}
	}
	return 0, errs.ErrSelectionCancelled
}

var _ core.Player = (*fakePlayer)(nil)
