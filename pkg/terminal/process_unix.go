// ABOUTME: Unix input mode for ProcessTerminal: clears ICANON and ECHO, sets VMIN=VTIME=0.
// ABOUTME: Output post-processing stays on so "\n" still returns the carriage between rows.

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EnterRawMode disables line buffering and echo on the input file and
// makes reads return immediately. Unlike term.MakeRaw it leaves output
// processing and signal generation alone, so Ctrl-C still interrupts.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.saveState(); err != nil {
		return err
	}

	fd := int(t.in.Fd())
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.oldState = nil
		return fmt.Errorf("reading termios: %w", err)
	}
	tio.Lflag &^= unix.ICANON | unix.ECHO
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, tio); err != nil {
		t.oldState = nil
		return fmt.Errorf("writing termios: %w", err)
	}
	return nil
}

// Read returns whatever input is pending without waiting for more.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	fd := int(t.in.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	ready, err := unix.Poll(fds, 0)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("polling input: %w", err)
	}
	if ready == 0 {
		return 0, nil
	}

	n, err := unix.Read(fd, p)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, nil
		}
		return 0, fmt.Errorf("reading input: %w", err)
	}
	return max(n, 0), nil
}
