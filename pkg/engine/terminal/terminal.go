package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RawMode holds the terminal state to restore on exit.
type RawMode struct {
	fd    int
	state *term.State
}

// EnterRaw puts stdin into raw mode.
func EnterRaw() (*RawMode, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore returns the terminal to the state it had before EnterRaw.
// Calling it more than once is harmless.
func (m *RawMode) Restore() error {
	if m == nil || m.state == nil {
		return nil
	}
	err := term.Restore(m.fd, m.state)
	m.state = nil
	return err
}
