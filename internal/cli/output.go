package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/termspot/internal/tui/styles"
)

// Fields prints aligned "label value" lines, labels muted.
type Fields struct {
	out    io.Writer
	labels []string
	values []string
}

// NewFields returns a Fields printer writing to stdout.
func NewFields() *Fields {
	return NewFieldsWriter(os.Stdout)
}

// NewFieldsWriter returns a Fields printer writing to out.
func NewFieldsWriter(out io.Writer) *Fields {
	return &Fields{out: out}
}

// Add appends a field. Empty values are shown as "-".
func (f *Fields) Add(label, value string) *Fields {
	if value == "" {
		value = "-"
	}
	f.labels = append(f.labels, label)
	f.values = append(f.values, value)
	return f
}

// Print writes all fields and resets the printer.
func (f *Fields) Print() {
	width := 0
	for _, l := range f.labels {
		width = max(width, lipgloss.Width(l))
	}
	for i, l := range f.labels {
		pad := width - lipgloss.Width(l) + 2
		_, _ = fmt.Fprintf(f.out, "%s%*s%s\n", styles.Muted.Render(l), pad, "", f.values[i])
	}
	f.labels, f.values = nil, nil
}
