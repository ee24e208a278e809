package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tessro/termspot/internal/core"
	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/tui/styles"
)

const helpText = `Commands:
  devices              Refresh the device list
  activate             Choose the device to control
  p                    Toggle play/pause
  play                 Resume playback
  pause                Pause playback
  restart              Seek to the start of the track
  next, prev           Skip to the next or previous track
  fwd, forward, back   Seek forward or back by a chosen offset
  search, s            Search for a track and play it
  playlist, playlists  Play one of your playlists
  status               Show what is playing
  help                 Show this help
  exit                 Quit`

// Renderer writes outcomes to the terminal.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Outcome writes o, styled by kind. Remote failures include the action, the
// cause and a suggestion when one applies.
func (r *Renderer) Outcome(o Outcome) {
	switch o.Kind {
	case KindExecuted:
		r.Println(o.Message)
	case KindRejected:
		r.Println(styles.Rejected.Render(o.Message))
	case KindRemoteFailure:
		r.Println(styles.Failed.Render(o.Action) + ": " + o.Cause.Error())
		if s := errs.GetSuggestion(o.Cause); s != "" {
			r.Println(styles.Dim.Render("  " + s))
		}
	}
}

// Println writes a line.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

func formatDevices(devices []core.Device, active core.Device) string {
	if len(devices) == 0 {
		return styles.Muted.Render("No devices found. Open Spotify on a device and type 'devices' again")
	}

	lines := make([]string, 0, len(devices)+1)
	for _, d := range devices {
		lines = append(lines, fmt.Sprintf("%s %s Device name: %s, Active: %t",
			styles.ActiveMarker(d.IsActive), styles.DeviceIcon(d.Type), d.Name, d.IsActive))
	}
	lines = append(lines, formatActive(active))
	return strings.Join(lines, "\n")
}

func formatActive(active core.Device) string {
	if active.IsZero() {
		return styles.Muted.Render("No active device")
	}
	return "Active device: " + styles.Highlight.Render(active.Name) + styles.Dim.Render(" ("+active.ID+")")
}

func formatStatus(s core.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.StatusIcon(s.IsPlaying))
	b.WriteString(" ")
	b.WriteString(styles.Title.Render(s.Title))
	if len(s.Contributors) > 0 {
		b.WriteString("\n  ")
		b.WriteString(styles.Subtitle.Render(strings.Join(s.Contributors, ", ")))
	}
	b.WriteString("\n  ")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("%d seconds in", int(s.Elapsed().Seconds()))))
	return b.String()
}

func trackLabel(t core.TrackResult) string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	return t.Name + " - " + strings.Join(t.Artists, ", ")
}

func playlistLabel(p core.PlaylistResult) string {
	label := fmt.Sprintf("%s (%s tracks)", p.Name, humanize.Comma(int64(p.TrackCount)))
	if p.Owner != "" {
		label += " by " + p.Owner
	}
	return label
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
