// ABOUTME: Fallback input mode for platforms without termios (Windows and others).
// ABOUTME: Uses term.MakeRaw; input polling is not implemented so Read reports nothing pending.

//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"fmt"

	"golang.org/x/term"
)

// EnterRawMode switches the input file to raw mode.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.saveState(); err != nil {
		return err
	}
	if _, err := term.MakeRaw(int(t.in.Fd())); err != nil {
		t.oldState = nil
		return fmt.Errorf("entering raw mode: %w", err)
	}
	return nil
}

// Read never blocks and never returns input on this platform.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return 0, nil
}
