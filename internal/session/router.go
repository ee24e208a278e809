package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessro/termspot/internal/core"
	errs "github.com/tessro/termspot/internal/errors"
)

// Options tunes the router and session.
type Options struct {
	// SearchLimit caps track search results.
	SearchLimit int
	// PlaylistLimit caps the playlist menu.
	PlaylistLimit int
	// DefaultDevice is selected by name at startup when no device is active.
	DefaultDevice string
	// ExitBypass, when set, confirms exit at the exit prompt.
	ExitBypass string
}

// DefaultOptions returns the built-in limits.
func DefaultOptions() Options {
	return Options{
		SearchLimit:   5,
		PlaylistLimit: 10,
	}
}

type handler func(ctx context.Context) Outcome

// Router maps a command token to its handler and turns the result into an
// Outcome. It never returns an error; every failure is an Outcome.
type Router struct {
	player   core.Player
	state    *State
	in       LineReader
	sel      Selector
	opts     Options
	logger   *log.Logger
	commands map[string]handler
}

// NewRouter creates a router that operates on state.
func NewRouter(p core.Player, state *State, in LineReader, sel Selector, opts Options, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := DefaultOptions()
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = d.SearchLimit
	}
	if opts.PlaylistLimit <= 0 {
		opts.PlaylistLimit = d.PlaylistLimit
	}

	r := &Router{
		player: p,
		state:  state,
		in:     in,
		sel:    sel,
		opts:   opts,
		logger: logger,
	}
	r.commands = map[string]handler{
		"devices":   r.devices,
		"activate":  r.activate,
		"p":         r.toggle,
		"play":      r.play,
		"pause":     r.pause,
		"restart":   r.restart,
		"next":      r.next,
		"prev":      r.prev,
		"fwd":       r.forward,
		"forward":   r.forward,
		"back":      r.back,
		"search":    r.search,
		"s":         r.search,
		"playlist":  r.playlists,
		"playlists": r.playlists,
		"status":    r.status,
		"help":      r.help,
		"exit":      r.exit,
	}
	return r
}

// Dispatch runs the command named by input. Matching is exact and
// case-sensitive after trimming surrounding whitespace.
func (r *Router) Dispatch(ctx context.Context, input string) Outcome {
	cmd := strings.TrimSpace(input)
	h, ok := r.commands[cmd]
	if !ok {
		return Rejected("Command not found: " + input)
	}

	r.logger.Debug("dispatch", "command", cmd, "device", r.state.Active().ID)
	out := h(ctx)
	if out.Kind == KindRemoteFailure {
		r.logger.Debug("remote failure", "command", cmd, "err", out.Cause)
	}
	return out
}

// requireActive returns the active device, or a Rejected outcome if none.
func (r *Router) requireActive() (core.Device, *Outcome) {
	active := r.state.Active()
	if active.IsZero() {
		out := Rejected("No active device. Type 'devices' or 'activate' first")
		return active, &out
	}
	return active, nil
}

// choose shows a menu. A non-nil Outcome means no option was chosen.
func (r *Router) choose(title string, options []string) (int, *Outcome) {
	idx, err := r.sel.Select(title, options)
	if err != nil {
		var out Outcome
		if errors.Is(err, errs.ErrSelectionCancelled) {
			out = Rejected("Selection cancelled")
		} else {
			out = Rejected(fmt.Sprintf("Selection failed: %v", err))
		}
		return 0, &out
	}
	if idx < 0 || idx >= len(options) {
		out := Rejected(fmt.Sprintf("Selection %d out of range", idx))
		return 0, &out
	}
	return idx, nil
}

func (r *Router) devices(ctx context.Context) Outcome {
	devices, err := r.player.ListDevices(ctx)
	if err != nil {
		return RemoteFailure("Could not list devices", err)
	}
	active := r.state.Registry.Refresh(devices)
	return Executed(formatDevices(devices, active))
}

func (r *Router) activate(ctx context.Context) Outcome {
	devices := r.state.Registry.Devices()
	if len(devices) == 0 {
		return Rejected("No devices found. Type 'devices' to refresh the list")
	}

	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}
	idx, out := r.choose("Select device", names)
	if out != nil {
		return *out
	}

	device, err := core.SelectDevice(devices, names[idx])
	if err != nil {
		return Rejected(err.Error())
	}
	if err := r.state.Registry.Activate(ctx, r.player, device); err != nil {
		return RemoteFailure("Could not activate "+device.Name, err)
	}
	return Executed("Active device: " + device.Name)
}

func (r *Router) toggle(ctx context.Context) Outcome {
	if _, out := r.requireActive(); out != nil {
		return *out
	}
	if r.state.Snapshot.IsPlaying {
		return r.pause(ctx)
	}
	return r.play(ctx)
}

func (r *Router) play(ctx context.Context) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}
	if r.state.Snapshot.IsPlaying {
		return Rejected("Already playing")
	}

	// resume from the start of the item, never from the cached progress
	start := time.Duration(0)
	if err := r.player.Resume(ctx, active.ID, &start); err != nil {
		return RemoteFailure("Could not resume playback", err)
	}
	return Executed("Resumed playback")
}

func (r *Router) pause(ctx context.Context) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}
	if !r.state.Snapshot.IsPlaying {
		return Rejected("Nothing is playing")
	}

	if err := r.player.Pause(ctx, active.ID); err != nil {
		return RemoteFailure("Could not pause playback", err)
	}
	return Executed("Paused playback")
}

func (r *Router) restart(ctx context.Context) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}

	if err := r.player.Seek(ctx, active.ID, 0); err != nil {
		return RemoteFailure("Could not restart track", err)
	}
	return Executed("Restarted track")
}

func (r *Router) next(ctx context.Context) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}

	if err := r.player.Next(ctx, active.ID); err != nil {
		return RemoteFailure("Could not skip to next track", err)
	}
	return Executed("Skipped to next track")
}

func (r *Router) prev(ctx context.Context) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}

	if err := r.player.Previous(ctx, active.ID); err != nil {
		return RemoteFailure("Could not skip to previous track", err)
	}
	return Executed("Skipped to previous track")
}

func (r *Router) forward(ctx context.Context) Outcome {
	return r.seekRelative(ctx, "Skip forward", core.SeekForward)
}

func (r *Router) back(ctx context.Context) Outcome {
	return r.seekRelative(ctx, "Skip back", core.SeekBack)
}

func (r *Router) seekRelative(ctx context.Context, title string, calc func(current, delta time.Duration) time.Duration) Outcome {
	active, out := r.requireActive()
	if out != nil {
		return *out
	}

	labels := make([]string, len(core.SeekOffsets))
	for i, o := range core.SeekOffsets {
		labels[i] = fmt.Sprintf("%d seconds", int(o.Seconds()))
	}
	idx, out := r.choose(title, labels)
	if out != nil {
		return *out
	}

	target := calc(r.state.Snapshot.Elapsed(), core.SeekOffsets[idx])
	if err := r.player.Seek(ctx, active.ID, target); err != nil {
		return RemoteFailure("Could not seek", err)
	}
	return Executed("Seeked to " + formatDuration(target))
}

func (r *Router) search(ctx context.Context) Outcome {
	query, err := r.in.ReadLine("Search: ")
	if err != nil {
		return Rejected("No search query entered")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Rejected("No search query entered")
	}

	results, err := r.player.SearchTracks(ctx, query, r.opts.SearchLimit)
	if err != nil {
		return RemoteFailure("Could not search tracks", err)
	}
	if len(results) == 0 {
		return Executed(fmt.Sprintf("No tracks found for %q", query))
	}

	labels := make([]string, len(results))
	for i, t := range results {
		labels[i] = trackLabel(t)
	}
	idx, out := r.choose("Select track", labels)
	if out != nil {
		return *out
	}

	if err := r.player.StartTrack(ctx, r.state.Active().ID, results[idx].ID); err != nil {
		return RemoteFailure("Could not play "+results[idx].Name, err)
	}
	return Executed("Now playing: " + labels[idx])
}

func (r *Router) playlists(ctx context.Context) Outcome {
	playlists, err := r.player.ListPlaylists(ctx, r.opts.PlaylistLimit)
	if err != nil {
		return RemoteFailure("Could not list playlists", err)
	}
	if len(playlists) == 0 {
		return Executed("No playlists found")
	}

	labels := make([]string, len(playlists))
	for i, p := range playlists {
		labels[i] = playlistLabel(p)
	}
	idx, out := r.choose("Select playlist", labels)
	if out != nil {
		return *out
	}

	if err := r.player.StartPlaylist(ctx, r.state.Active().ID, playlists[idx].ID); err != nil {
		return RemoteFailure("Could not play playlist "+playlists[idx].Name, err)
	}
	return Executed("Now playing playlist: " + playlists[idx].Name)
}

func (r *Router) status(context.Context) Outcome {
	if !r.state.Snapshot.IsPlaying {
		return Executed("Not listening to anything")
	}
	return Executed(formatStatus(r.state.Snapshot))
}

func (r *Router) help(context.Context) Outcome {
	return Executed(helpText)
}

func (r *Router) exit(context.Context) Outcome {
	reply, err := r.in.ReadLine("Are you sure you want to exit? (y/n) ")
	if err != nil {
		reply = ""
	}

	switch parseExitAnswer(reply, r.opts.ExitBypass) {
	case answerConfirm:
		return Outcome{Kind: KindExecuted, Message: "Exiting..", Exit: true}
	case answerCancel:
		return Executed("Exit cancelled")
	default:
		return Rejected(fmt.Sprintf("Invalid answer %q. Type 'exit' to be asked again", strings.TrimSpace(reply)))
	}
}
