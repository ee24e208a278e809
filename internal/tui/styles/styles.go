package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/termspot/internal/core"
)

// Colors
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	Surface   = lipgloss.Color("#374151") // Medium gray
	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray

	SpotifyGreen = lipgloss.Color("#1DB954")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextMuted)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(SpotifyGreen)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(SpotifyGreen)
)

// Outcome styles
var (
	OK = lipgloss.NewStyle().
		Foreground(Success)

	Rejected = lipgloss.NewStyle().
			Foreground(Warning)

	Failed = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)
)

// Menu styles
var (
	MenuItem = lipgloss.NewStyle().
			PaddingLeft(2)

	MenuCursor = lipgloss.NewStyle().
			PaddingLeft(2).
			Background(Surface)
)

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// DeviceIcon returns an icon for device type
func DeviceIcon(t core.DeviceType) string {
	switch t {
	case core.DeviceTypeComputer:
		return "💻"
	case core.DeviceTypePhone:
		return "📱"
	case core.DeviceTypeSpeaker:
		return "🔊"
	case core.DeviceTypeTV:
		return "📺"
	default:
		return "🎧"
	}
}

// ActiveMarker returns the filled or hollow dot used in device lists.
func ActiveMarker(active bool) string {
	if active {
		return Playing.Render("●")
	}
	return Dim.Render("○")
}
