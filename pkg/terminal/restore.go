// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

var (
	showCursor = []byte("\x1b[?25h")
	resetStyle = []byte("\x1b[0m")
)

// RestoreOnPanic should be deferred at the top of main (or any
// goroutine that owns the terminal). On panic it resets colors, shows
// the cursor, restores the input mode, prints the panic value and stack
// trace to stderr, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	restore(t)
	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is in raw mode. Unlike RestoreOnPanic it
// does NOT call os.Exit, allowing the main goroutine to handle shutdown.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	restore(t)
	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}

// restore is best-effort: failures are ignored because the caller is
// already on an error path.
func restore(t Terminal) {
	_, _ = t.Write(resetStyle)
	_, _ = t.Write(showCursor)
	_ = t.ExitRawMode()
}
