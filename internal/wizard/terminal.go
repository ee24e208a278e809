package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	errs "github.com/tessro/termspot/internal/errors"
	"github.com/tessro/termspot/internal/tui/styles"
)

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Terminal reads command lines and presents menus. Menus use the bubbletea
// picker on a terminal and a numbered list otherwise, so piped input still
// works.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal creates a Terminal over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: IsTerminal(),
	}
}

// SetInteractive forces the picker on or off.
func (t *Terminal) SetInteractive(interactive bool) {
	t.interactive = interactive
}

// ReadLine prints prompt and returns the next line without its line ending.
// It returns io.EOF only when no more input is available.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			_, _ = fmt.Fprintln(t.out)
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Select returns the index of the option the user picks.
func (t *Terminal) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errs.ErrSelectionCancelled
	}
	if t.interactive {
		return RunPicker(title, options)
	}
	return t.selectNumbered(title, options)
}

// selectNumbered prints a numbered list and asks until it gets a valid
// number. An empty answer or end of input cancels.
func (t *Terminal) selectNumbered(title string, options []string) (int, error) {
	_, _ = fmt.Fprintln(t.out, styles.Highlight.Render(title))
	for i, o := range options {
		_, _ = fmt.Fprintf(t.out, "  %d) %s\n", i+1, o)
	}

	for {
		answer, err := t.ReadLine(fmt.Sprintf("Choice [1-%d]: ", len(options)))
		if err != nil {
			return 0, errs.ErrSelectionCancelled
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return 0, errs.ErrSelectionCancelled
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		_, _ = fmt.Fprintln(t.out, styles.Rejected.Render("Enter a number between 1 and "+strconv.Itoa(len(options))))
	}
}
