package session

// LineReader reads one line of input. It returns io.EOF when input is
// exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Selector presents labeled options and blocks until one is chosen. It
// returns errors.ErrSelectionCancelled when the user backs out.
type Selector interface {
	Select(title string, options []string) (int, error)
}
