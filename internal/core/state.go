package core

import (
	"context"
	"time"

	errs "github.com/tessro/termspot/internal/errors"
)

// Playback is the raw playback status reported by the boundary.
// A nil *Playback means nothing is loaded.
type Playback struct {
	IsPlaying bool
	Progress  *time.Duration
	Item      Playable
}

// Snapshot is the last fetched playback status. It is replaced on every
// refresh and never mutated in place.
type Snapshot struct {
	IsPlaying    bool
	Progress     *time.Duration
	Title        string
	Contributors []string
}

// Elapsed returns the progress into the current item, or 0 if unknown.
func (s Snapshot) Elapsed() time.Duration {
	if s.Progress == nil {
		return 0
	}
	return *s.Progress
}

// PlaybackReader reads the current playback status.
type PlaybackReader interface {
	CurrentPlayback(ctx context.Context) (*Playback, error)
}

// FetchSnapshot queries the current playback and converts it to a Snapshot.
// Callers must not call it without an active device.
func FetchSnapshot(ctx context.Context, r PlaybackReader, active Device) (Snapshot, error) {
	if active.IsZero() {
		return Snapshot{}, errs.ErrNoActiveDevice
	}

	pb, err := r.CurrentPlayback(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(pb), nil
}

// NewSnapshot builds a Snapshot from a boundary playback status.
func NewSnapshot(pb *Playback) Snapshot {
	if pb == nil || pb.Item == nil {
		return Snapshot{}
	}

	contributors := pb.Item.Contributors()
	if contributors == nil {
		contributors = []string{}
	}

	snap := Snapshot{
		IsPlaying:    pb.IsPlaying,
		Title:        pb.Item.Title(),
		Contributors: append([]string(nil), contributors...),
	}
	if pb.Progress != nil {
		p := *pb.Progress
		snap.Progress = &p
	}
	return snap
}
