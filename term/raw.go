// Package term owns the boundary between the decoder and a real terminal
// device: raw-mode configuration and a polling read loop that feeds bytes
// to a parser and flushes it when input goes idle.
package term

import (
	"fmt"
	"io"

	"golang.org/x/term"
)

// RawMode holds the state needed to restore a terminal after raw mode.
type RawMode struct {
	fd    int
	state *term.State
}

// EnableRaw puts the terminal in raw mode (no echo, no line buffering).
// The caller must call Restore before exiting.
func EnableRaw(fd int) (*RawMode, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enabling raw mode: %w", err)
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore returns the terminal to its previous mode. Calling Restore more
// than once is harmless.
func (r *RawMode) Restore() error {
	if r.state == nil {
		return nil
	}
	err := term.Restore(r.fd, r.state)
	r.state = nil
	return err
}

// IsTerminal reports whether fd is attached to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Control sequences toggling bracketed-paste mode in the terminal.
const (
	enablePaste  = "\x1b[?2004h"
	disablePaste = "\x1b[?2004l"
)

// EnableBracketedPaste asks the terminal to frame pasted text with the
// paste markers the parser recognizes.
func EnableBracketedPaste(w io.Writer) error {
	_, err := io.WriteString(w, enablePaste)
	return err
}

// DisableBracketedPaste turns paste framing back off.
func DisableBracketedPaste(w io.Writer) error {
	_, err := io.WriteString(w, disablePaste)
	return err
}
