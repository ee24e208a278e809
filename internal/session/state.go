package session

import (
	"context"

	"github.com/tessro/termspot/internal/core"
)

// State is everything the session knows between commands: the device
// registry and the last playback snapshot.
type State struct {
	Registry *core.DeviceRegistry
	Snapshot core.Snapshot
}

// NewState returns a State with no devices and a not-playing snapshot.
func NewState() *State {
	return &State{Registry: core.NewRegistry()}
}

// Active returns the active device.
func (s *State) Active() core.Device {
	return s.Registry.Active()
}

// RefreshSnapshot replaces the snapshot with the current playback status.
// With no active device the snapshot is reset without querying Spotify. On
// error the previous snapshot is kept.
func (s *State) RefreshSnapshot(ctx context.Context, r core.PlaybackReader) error {
	active := s.Registry.Active()
	if active.IsZero() {
		s.Snapshot = core.Snapshot{}
		return nil
	}

	snap, err := core.FetchSnapshot(ctx, r, active)
	if err != nil {
		return err
	}
	s.Snapshot = snap
	return nil
}
