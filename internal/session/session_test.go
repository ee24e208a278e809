package session

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/termspot/internal/core"
)

func playing(title string, progress time.Duration, artists ...string) *core.Playback {
	return &core.Playback{
		IsPlaying: true,
		Progress:  &progress,
		Item:      &core.Track{Name: title, Artists: artists},
	}
}

func newTestSession(p *fakePlayer, lines []string, picks []string, opts Options) (*Session, *scriptedReader, *bytes.Buffer) {
	in := &scriptedReader{lines: lines}
	sel := &scriptedSelector{picks: picks}
	var out bytes.Buffer
	return New(p, in, sel, &out, opts, nil), in, &out
}

func count(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestRunStartupDiscovery(t *testing.T) {
	p := &fakePlayer{devices: []core.Device{
		{ID: "A", Name: "Laptop", IsActive: false},
		{ID: "B", Name: "Kitchen", IsActive: true},
	}}
	s, _, out := newTestSession(p, nil, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Device name: Laptop, Active: false")
	assert.Contains(t, out.String(), "Device name: Kitchen, Active: true")
	assert.Contains(t, out.String(), "Active device: Kitchen")
	assert.Contains(t, out.String(), "Exiting..")
	assert.Equal(t, "B", s.State().Active().ID)
}

func TestRunNoActiveDeviceNeverPolls(t *testing.T) {
	p := &fakePlayer{devices: []core.Device{{ID: "A", Name: "Laptop"}}}
	s, _, _ := newTestSession(p, []string{"status", "play", "help"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 0, count(p.calls, "CurrentPlayback"))
	assert.Equal(t, []string{"ListDevices"}, p.calls)
	assert.False(t, s.State().Snapshot.IsPlaying)
}

func TestRunPollsEveryIteration(t *testing.T) {
	p := &fakePlayer{
		devices:  []core.Device{{ID: "A", Name: "Kitchen", IsActive: true}},
		playback: playing("Song", 10*time.Second, "Artist"),
	}
	s, in, _ := newTestSession(p, []string{"status", "next", "status"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	// Three commands plus the final read that hits EOF.
	assert.Len(t, in.prompts, 4)
	assert.Equal(t, 4, count(p.calls, "CurrentPlayback"))
	assert.Equal(t, []string{"ListDevices", "Next[A]"}, p.remoteCalls())
	assert.Equal(t, "Song", s.State().Snapshot.Title)
}

func TestRunExitCancelledContinues(t *testing.T) {
	p := &fakePlayer{devices: []core.Device{{ID: "A", Name: "Kitchen", IsActive: true}}}
	s, in, out := newTestSession(p, []string{"exit", "no", "next", "exit", "yes", "prev"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"ListDevices", "Next[A]"}, p.remoteCalls())
	assert.Contains(t, out.String(), "Exit cancelled")
	assert.Equal(t, []string{"prev"}, in.lines, "loop stops at the confirmed exit")
}

func TestRunInvalidExitAnswerDoesNotExit(t *testing.T) {
	p := &fakePlayer{}
	s, in, out := newTestSession(p, []string{"exit", "sure", "help"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), `Invalid answer "sure"`)
	assert.Contains(t, out.String(), "Commands:")
	assert.Empty(t, in.lines)
}

func TestRunContinuesAfterRemoteFailure(t *testing.T) {
	p := &fakePlayer{
		devices: []core.Device{{ID: "A", Name: "Kitchen", IsActive: true}},
		errs:    map[string]error{"Next": errors.New("502 bad gateway")},
	}
	s, _, out := newTestSession(p, []string{"next", "restart"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"ListDevices", "Next[A]", "Seek[A 0s]"}, p.remoteCalls())
	assert.Contains(t, out.String(), "Could not skip to next track: 502 bad gateway")
}

func TestRunUnknownCommand(t *testing.T) {
	p := &fakePlayer{}
	s, _, out := newTestSession(p, []string{"frobnicate", "", "   "}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Command not found: frobnicate")
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Command not found")), "blank lines are skipped")
}

func TestRunFailedRefreshKeepsSnapshot(t *testing.T) {
	p := &fakePlayer{
		devices:  []core.Device{{ID: "A", Name: "Kitchen", IsActive: true}},
		playback: playing("Song", 30*time.Second),
	}
	s, _, _ := newTestSession(p, []string{"status"}, nil, DefaultOptions())

	// The first poll succeeds; make every later one fail.
	in := s.in.(*scriptedReader)
	in.lines = []string{"status", "status"}
	s.router.commands["status"] = func(context.Context) Outcome {
		p.errs = map[string]error{"CurrentPlayback": errors.New("timeout")}
		return Executed(s.State().Snapshot.Title)
	}

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, "Song", s.State().Snapshot.Title)
	assert.True(t, s.State().Snapshot.IsPlaying)
}

func TestRunDefaultDevice(t *testing.T) {
	p := &fakePlayer{devices: []core.Device{
		{ID: "A", Name: "Laptop"},
		{ID: "B", Name: "Kitchen"},
	}}
	s, _, out := newTestSession(p, []string{"next"}, nil, Options{DefaultDevice: "Kitchen"})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, core.Device{ID: "B", Name: "Kitchen", IsActive: true}, s.State().Active())
	assert.Equal(t, []string{"ListDevices", "Next[B]"}, p.remoteCalls(), "preselect does not transfer")
	assert.Contains(t, out.String(), "Active device: Kitchen")
}

func TestRunDefaultDeviceIgnoredWhenActive(t *testing.T) {
	p := &fakePlayer{devices: []core.Device{
		{ID: "A", Name: "Laptop", IsActive: true},
		{ID: "B", Name: "Kitchen"},
	}}
	s, _, _ := newTestSession(p, nil, nil, Options{DefaultDevice: "Kitchen"})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, "A", s.State().Active().ID)
}

func TestRunStartupDiscoveryFailure(t *testing.T) {
	p := &fakePlayer{errs: map[string]error{"ListDevices": errors.New("offline")}}
	s, _, out := newTestSession(p, []string{"help"}, nil, DefaultOptions())

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Could not list devices: offline")
	assert.Contains(t, out.String(), "Commands:")
}

func TestRunCancelledContext(t *testing.T) {
	p := &fakePlayer{}
	s, _, _ := newTestSession(p, []string{"help"}, nil, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

// A mutating command does not refresh the snapshot; only the next loop
// iteration does. Status right after pause reports the previous poll.
func TestSnapshotIsStaleAfterMutation(t *testing.T) {
	f := newFixture(DefaultOptions()).withActive("A").withSnapshot(true, 20*time.Second)

	out := f.router.Dispatch(context.Background(), "pause")
	require.Equal(t, KindExecuted, out.Kind)

	assert.True(t, f.state.Snapshot.IsPlaying)
	status := f.router.Dispatch(context.Background(), "status")
	assert.NotEqual(t, "Not listening to anything", status.Message)
	assert.Equal(t, []string{"Pause[A]"}, f.player.calls)
}

func TestStateRefreshSnapshot(t *testing.T) {
	p := &fakePlayer{playback: playing("Song", time.Second, "A", "B")}
	st := NewState()

	require.NoError(t, st.RefreshSnapshot(context.Background(), p))
	assert.Equal(t, core.Snapshot{}, st.Snapshot)
	assert.Empty(t, p.calls)

	st.Registry.SetActive(core.Device{ID: "A", IsActive: true})
	require.NoError(t, st.RefreshSnapshot(context.Background(), p))
	assert.Equal(t, []string{"A", "B"}, st.Snapshot.Contributors)

	p.playback = &core.Playback{IsPlaying: false, Item: &core.Episode{Name: "Pilot"}}
	require.NoError(t, st.RefreshSnapshot(context.Background(), p))
	assert.Equal(t, "Pilot", st.Snapshot.Title)
	assert.Equal(t, []string{}, st.Snapshot.Contributors)
}
