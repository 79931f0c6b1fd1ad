// ABOUTME: Renderer owns the terminal-sized framebuffer and the buffered output sink
// ABOUTME: Each Render serializes the frame, moves the cursor back to the top and clears to the background

package gfx

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/mauromedda/termgfx/internal/log"
	"github.com/mauromedda/termgfx/internal/perf"
	"github.com/mauromedda/termgfx/pkg/terminal"
)

// outputBufferSize holds a full frame for typical terminal sizes so that
// Serialize issues one write per flush.
const outputBufferSize = 128 * 1024

// RendererOptions configures a Renderer.
type RendererOptions struct {
	// Background fills the framebuffer at creation, on resize and after
	// every render.
	Background Color
	// Glyph is printed for each pixel. Empty means DefaultGlyph.
	Glyph string
}

// Renderer draws into a framebuffer sized to the terminal and pushes it
// to the terminal once per Render.
type Renderer struct {
	term       terminal.Terminal
	out        *bufio.Writer
	fb         *Framebuffer
	background Color
	glyph      string
	glyphWidth int
}

// NewRenderer sizes a framebuffer to t and hides the cursor.
func NewRenderer(t terminal.Terminal, opts RendererOptions) (*Renderer, error) {
	glyph := opts.Glyph
	if glyph == "" {
		glyph = DefaultGlyph
	}
	gw := GlyphWidth(glyph)
	if gw <= 0 {
		return nil, fmt.Errorf("glyph %q has no display width: %w", glyph, ErrInvalidConfig)
	}

	cols, rows, err := t.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTerminalSizeUnavailable, err)
	}

	r := &Renderer{
		term:       t,
		out:        bufio.NewWriterSize(t, outputBufferSize),
		background: opts.Background,
		glyph:      glyph,
		glyphWidth: gw,
	}
	r.Resize(cols, rows)

	if err := r.fb.HideCursor(r.out, true); err != nil {
		return nil, err
	}
	if err := r.out.Flush(); err != nil {
		return nil, fmt.Errorf("hiding cursor: %w: %w", ErrIO, err)
	}
	return r, nil
}

// Render writes the current frame, returns the cursor to the frame origin
// and clears the framebuffer to the background color.
func (r *Renderer) Render() error {
	defer perf.Region("Renderer.Render")()

	if err := r.fb.Serialize(r.out); err != nil {
		return err
	}
	if err := r.fb.ResetCursor(r.out); err != nil {
		return err
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flushing cursor reset: %w: %w", ErrIO, err)
	}
	r.fb.Clear(r.background)
	return nil
}

// Resize replaces the framebuffer with a blank one fitting a terminal of
// columns x rows cells. Previous content is discarded.
func (r *Renderer) Resize(columns, rows int) {
	r.fb = NewFramebuffer(columns/r.glyphWidth, rows, r.background)
	r.fb.SetGlyph(r.glyph)
	log.Debug("renderer: framebuffer %dx%d for terminal %dx%d", r.fb.width, r.fb.height, columns, rows)
}

// ScreenSize returns the framebuffer dimensions in pixels.
func (r *Renderer) ScreenSize() (int, int) {
	return r.fb.Size()
}

// Background returns the clear color.
func (r *Renderer) Background() Color {
	return r.background
}

// Pixel sets one pixel; out-of-range coordinates report false.
func (r *Renderer) Pixel(x, y int, c Color) bool {
	return r.fb.SetPixel(x, y, c)
}

// GetPixel reads back a pixel of the frame being drawn.
func (r *Renderer) GetPixel(x, y int) (Color, error) {
	return r.fb.GetPixel(x, y)
}

// Line draws an inclusive line segment.
func (r *Renderer) Line(x0, y0, x1, y1 int, c Color) {
	r.fb.Line(x0, y0, x1, y1, c)
}

// DrawFramebuffer blits src with its top-left corner at (x, y).
func (r *Renderer) DrawFramebuffer(x, y int, src *Framebuffer) {
	r.fb.DrawFramebuffer(x, y, src)
}

// finish moves the cursor below the last frame.
func (r *Renderer) finish() error {
	for range r.fb.height {
		if _, err := r.out.Write(rowSeparator); err != nil {
			return fmt.Errorf("clearing frame: %w: %w", ErrIO, err)
		}
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("clearing frame: %w: %w", ErrIO, err)
	}
	return nil
}

// Close resets colors and shows the cursor. It always attempts both
// writes and the flush, returning the combined failures. Output left over
// from a failed frame is discarded so the restore sequences still reach
// the terminal.
func (r *Renderer) Close() error {
	r.out.Reset(r.term)

	var resetErr error
	if err := ResetColor(r.out); err != nil {
		resetErr = fmt.Errorf("resetting color: %w: %w", ErrIO, err)
	}
	showErr := r.fb.HideCursor(r.out, false)
	var flushErr error
	if err := r.out.Flush(); err != nil {
		flushErr = fmt.Errorf("flushing on close: %w: %w", ErrIO, err)
	}
	return errors.Join(resetErr, showErr, flushErr)
}
