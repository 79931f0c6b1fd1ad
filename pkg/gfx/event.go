// ABOUTME: Input and resize events polled from the terminal once per tick
// ABOUTME: Raw bytes are validated strictly as UTF-8; malformed input is fatal

package gfx

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/mauromedda/termgfx/internal/log"
	"github.com/mauromedda/termgfx/internal/perf"
	"github.com/mauromedda/termgfx/pkg/terminal"
)

// burstSentinel marks the end of a read burst on some terminal
// collaborators; it never becomes an event.
const burstSentinel = 0x00

const readChunkSize = 256

// maxPollChunks bounds the input consumed by one Poll so a flood of input
// cannot stall the frame loop. Whatever is left is read on the next tick.
const maxPollChunks = 64

// Event is either CharacterInput or Resize.
type Event interface {
	event()
}

// CharacterInput is one decoded character typed by the user.
type CharacterInput struct {
	Rune rune
}

// Resize reports new terminal dimensions in character cells.
type Resize struct {
	Width  int
	Height int
}

func (CharacterInput) event() {}
func (Resize) event()         {}

// EventHandler turns pending terminal input and size changes into events.
type EventHandler struct {
	term    terminal.Terminal
	width   int
	height  int
	chunk   []byte
	pending []byte
	// carry is a character split by the poll limit, completed next poll.
	carry []byte
}

// NewEventHandler records the current terminal size and switches input to
// non-canonical, unechoed, non-blocking mode.
func NewEventHandler(t terminal.Terminal) (*EventHandler, error) {
	h := &EventHandler{
		term:  t,
		chunk: make([]byte, readChunkSize),
	}
	if w, ht, err := t.Size(); err == nil {
		h.width, h.height = w, ht
	} else {
		log.Debug("events: initial size unavailable: %v", err)
	}

	if err := t.EnterRawMode(); err != nil {
		return nil, fmt.Errorf("entering raw input mode: %w", err)
	}
	return h, nil
}

// Poll drains the input available right now, up to maxPollChunks reads,
// and checks for a size change.
// Character events come first in arrival order, followed by at most one
// Resize. An empty result means nothing happened.
func (h *EventHandler) Poll() ([]Event, error) {
	defer perf.Region("EventHandler.Poll")()

	data, err := h.drain()
	if err != nil {
		return nil, err
	}

	var events []Event
	if len(data) > 0 {
		valid, _, err := transform.Bytes(encoding.UTF8Validator, data)
		if err != nil {
			return nil, fmt.Errorf("decoding %d input bytes: %w: %w", len(data), ErrInvalidInput, err)
		}
		for len(valid) > 0 {
			r, size := utf8.DecodeRune(valid)
			valid = valid[size:]
			if r == burstSentinel {
				continue
			}
			events = append(events, CharacterInput{Rune: r})
		}
	}

	if ev, ok := h.checkResize(); ok {
		events = append(events, ev)
	}
	return events, nil
}

// drain reads until the terminal reports nothing pending or the poll limit
// is reached.
func (h *EventHandler) drain() ([]byte, error) {
	h.pending = append(h.pending[:0], h.carry...)
	h.carry = h.carry[:0]
	for range maxPollChunks {
		n, err := h.term.Read(h.chunk)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w: %w", ErrIO, err)
		}
		if n == 0 {
			return h.pending, nil
		}
		h.pending = append(h.pending, h.chunk[:n]...)
	}

	if n := incompleteTail(h.pending); n > 0 {
		cut := len(h.pending) - n
		h.carry = append(h.carry, h.pending[cut:]...)
		h.pending = h.pending[:cut]
	}
	log.Debug("events: poll limit reached, %d bytes deferred", len(h.carry))
	return h.pending, nil
}

// incompleteTail returns the length of a truncated UTF-8 sequence at the
// end of data, or 0 if data ends on a character boundary.
func incompleteTail(data []byte) int {
	for i := len(data) - 1; i >= 0 && i > len(data)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if utf8.FullRune(data[i:]) {
			return 0
		}
		return len(data) - i
	}
	return 0
}

func (h *EventHandler) checkResize() (Event, bool) {
	w, ht, err := h.term.Size()
	if err != nil {
		return nil, false
	}
	if w == h.width && ht == h.height {
		return nil, false
	}
	h.width, h.height = w, ht
	return Resize{Width: w, Height: ht}, true
}

// Close restores buffered, echoed input.
func (h *EventHandler) Close() error {
	if err := h.term.ExitRawMode(); err != nil {
		return fmt.Errorf("restoring input mode: %w", err)
	}
	return nil
}
