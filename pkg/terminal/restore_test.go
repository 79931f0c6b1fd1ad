// ABOUTME: Tests for RecoverGoroutine panic recovery without os.Exit
// ABOUTME: Verifies goroutine panics are caught, the cursor is shown and input mode restored

package terminal

import (
	"strings"
	"testing"
)

func TestRecoverGoroutine_CatchesPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	if err := vt.EnterRawMode(); err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(vt)
		panic("test goroutine panic")
	}()

	<-done

	if vt.IsRawMode() {
		t.Error("expected raw mode to be exited on goroutine panic")
	}
	if !strings.HasSuffix(vt.Output(), "\x1b[0m\x1b[?25h") {
		t.Errorf("expected color reset and cursor show, got %q", vt.Output())
	}
}

func TestRecoverGoroutine_NoPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(vt)
		// no panic: normal return
	}()

	<-done

	if vt.ExitCount() != 0 {
		t.Error("ExitRawMode should not be called when no panic occurs")
	}
	if vt.Output() != "" {
		t.Errorf("expected no output, got %q", vt.Output())
	}
}
