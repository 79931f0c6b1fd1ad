// ABOUTME: ProcessTerminal implements Terminal on the process's stdin/stdout using golang.org/x/term.
// ABOUTME: Input-mode switching and non-blocking reads live in the platform files.

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by a pair of files,
// normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	mu       sync.Mutex
	in       *os.File
	out      *os.File
	oldState *term.State
}

// NewProcessTerminal returns a ProcessTerminal on os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return NewProcessTerminalFiles(os.Stdin, os.Stdout)
}

// NewProcessTerminalFiles returns a ProcessTerminal reading from in and
// writing to (and sizing from) out.
func NewProcessTerminalFiles(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{in: in, out: out}
}

// ExitRawMode restores the input state saved by EnterRawMode.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions in cells.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}

// saveState records the current input state so ExitRawMode can restore it.
// Must be called with t.mu held.
func (t *ProcessTerminal) saveState() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode: %s is not a terminal", t.in.Name())
	}
	state, err := term.GetState(fd)
	if err != nil {
		return fmt.Errorf("saving terminal state: %w", err)
	}
	t.oldState = state
	return nil
}
