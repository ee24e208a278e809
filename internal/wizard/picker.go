package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/tui/styles"
)

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultPickerKeys = pickerKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "tab"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// PickerModel is the bubbletea model for choosing one option from a list.
// Typing filters the options fuzzily.
type PickerModel struct {
	title     string
	options   []string
	visible   []int
	filter    textinput.Model
	keys      pickerKeys
	help      help.Model
	cursor    int
	chosen    int
	cancelled bool
}

// NewPickerModel creates a picker over options.
func NewPickerModel(title string, options []string) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := PickerModel{
		title:   title,
		options: options,
		filter:  ti,
		keys:    defaultPickerKeys,
		help:    help.New(),
		chosen:  -1,
	}
	m.applyFilter()
	return m
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.visible) > 0 {
				m.chosen = m.visible[m.cursor]
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *PickerModel) applyFilter() {
	m.cursor = 0
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = make([]int, len(m.options))
		for i := range m.options {
			m.visible[i] = i
		}
		return
	}

	matches := fuzzy.Find(query, m.options)
	m.visible = make([]int, len(matches))
	for i, match := range matches {
		m.visible[i] = match.Index
	}
}

// View renders the model.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Highlight.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(styles.Muted.Render("No matches"))
		b.WriteString("\n")
	}
	for i, idx := range m.visible {
		if i == m.cursor {
			b.WriteString(styles.MenuCursor.Render("▸ " + m.options[idx]))
		} else {
			b.WriteString(styles.MenuItem.Render("  " + m.options[idx]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the index of the chosen option in the original list.
func (m PickerModel) Chosen() (int, error) {
	if m.cancelled || m.chosen < 0 {
		return 0, errs.ErrSelectionCancelled
	}
	return m.chosen, nil
}

// RunPicker runs the picker inline and returns the chosen index.
func RunPicker(title string, options []string) (int, error) {
	p := tea.NewProgram(NewPickerModel(title, options))
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	return final.(PickerModel).Chosen()
}
