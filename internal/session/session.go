// Package session runs the interactive command loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tessro/termspot/internal/core"
	"github.com/tessro/termspot/internal/tui/styles"
)

// Session owns the State and drives the read-dispatch-render loop. It is
// single-threaded: each remote call completes before the next line is read.
type Session struct {
	player core.Player
	state  *State
	router *Router
	in     LineReader
	render *Renderer
	opts   Options
	logger *log.Logger
}

// New creates a session over p, reading commands from in and menus from sel.
func New(p core.Player, in LineReader, sel Selector, out io.Writer, opts Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	state := NewState()
	return &Session{
		player: p,
		state:  state,
		router: NewRouter(p, state, in, sel, opts, logger),
		in:     in,
		render: NewRenderer(out),
		opts:   opts,
		logger: logger,
	}
}

// State returns the session state.
func (s *Session) State() *State {
	return s.state
}

// Run discovers devices, then reads and dispatches commands until exit is
// confirmed, input reaches EOF, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.discover(ctx)

	prompt := styles.Prompt.Render("termspot>") + " "
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.state.RefreshSnapshot(ctx, s.player); err != nil {
			s.logger.Warn("could not refresh playback status", "err", err)
		}

		line, err := s.in.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			s.render.Println("Exiting..")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		out := s.router.Dispatch(ctx, line)
		s.render.Outcome(out)
		if out.Exit {
			return nil
		}
	}
}

// discover lists devices once at startup and picks the active device. When
// nothing is active the configured default device is preselected by name;
// playback is not transferred until the user runs a command.
func (s *Session) discover(ctx context.Context) {
	devices, err := s.player.ListDevices(ctx)
	if err != nil {
		s.render.Outcome(RemoteFailure("Could not list devices", err))
		return
	}

	active := s.state.Registry.Refresh(devices)
	s.logger.Debug("discovered devices", "count", len(devices), "active", active.ID)

	if active.IsZero() && s.opts.DefaultDevice != "" {
		d, err := core.SelectDevice(devices, s.opts.DefaultDevice)
		if err != nil {
			s.logger.Warn("default device unavailable", "device", s.opts.DefaultDevice, "err", err)
		} else {
			s.state.Registry.SetActive(d)
			active = d
		}
	}

	s.render.Println(formatDevices(devices, active))
}
