// ABOUTME: Row-major pixel grid with Bresenham lines, clipped blits and 5x5 area resampling
// ABOUTME: Serialize emits a color sequence only when consecutive cells differ within a row

package gfx

import (
	"fmt"
	"io"
	"strconv"
)

// DefaultGlyph is printed for every pixel: two spaces make a roughly
// square cell on common terminal fonts.
const DefaultGlyph = "  "

// samplesPerAxis is the super-sampling grid used by ResizeTo.
const samplesPerAxis = 5

var (
	rowSeparator = []byte("\n")
	cursorHide   = []byte("\x1b[?25l")
	cursorShow   = []byte("\x1b[?25h")
)

// Sink is an output stream that buffers writes until Flush.
// *bufio.Writer satisfies it.
type Sink interface {
	io.Writer
	Flush() error
}

// Framebuffer is a width*height grid of colors in row-major order.
type Framebuffer struct {
	width  int
	height int
	cells  []Color
	glyph  []byte

	// seq holds the color sequence being written by Serialize.
	seq [ColorSetLen]byte
}

// NewFramebuffer allocates a framebuffer filled with fill.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int, fill Color) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)

	cells := make([]Color, width*height)
	for i := range cells {
		cells[i] = fill
	}
	return &Framebuffer{
		width:  width,
		height: height,
		cells:  cells,
		glyph:  []byte(DefaultGlyph),
	}
}

// SetGlyph changes the text printed for each pixel by Serialize.
func (f *Framebuffer) SetGlyph(glyph string) {
	f.glyph = []byte(glyph)
}

// Width returns the number of columns.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the number of rows.
func (f *Framebuffer) Height() int { return f.height }

// Size returns width and height.
func (f *Framebuffer) Size() (int, int) { return f.width, f.height }

func (f *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

// SetPixel writes c at (x, y). Out-of-range coordinates are ignored and
// reported as false.
func (f *Framebuffer) SetPixel(x, y int, c Color) bool {
	if !f.inBounds(x, y) {
		return false
	}
	f.cells[y*f.width+x] = c
	return true
}

// GetPixel returns the color at (x, y).
func (f *Framebuffer) GetPixel(x, y int) (Color, error) {
	if !f.inBounds(x, y) {
		return Color{}, fmt.Errorf("pixel (%d,%d) in %dx%d buffer: %w", x, y, f.width, f.height, ErrOutOfBounds)
	}
	return f.cells[y*f.width+x], nil
}

// Clear overwrites every cell with c.
func (f *Framebuffer) Clear(c Color) {
	for i := range f.cells {
		f.cells[i] = c
	}
}

// Line rasterizes the segment between both endpoints (inclusive).
//
// The walk always starts from the lexicographically smaller endpoint so
// that swapping the arguments touches exactly the same cells; Bresenham's
// tie-breaking otherwise depends on direction.
func (f *Framebuffer) Line(x0, y0, x1, y1 int, c Color) {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	x, y := x0, y0
	for {
		f.SetPixel(x, y, c)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawFramebuffer copies src onto f with its top-left corner at (x, y).
// Both rectangles are clipped; nothing outside either is touched.
func (f *Framebuffer) DrawFramebuffer(x, y int, src *Framebuffer) {
	if src == nil {
		return
	}

	// Visible source rectangle [sx0,sx1) x [sy0,sy1).
	sx0 := max(0, -x)
	sy0 := max(0, -y)
	sx1 := min(src.width, f.width-x)
	sy1 := min(src.height, f.height-y)
	if sx0 >= sx1 || sy0 >= sy1 {
		return
	}

	for sy := sy0; sy < sy1; sy++ {
		srcRow := src.cells[sy*src.width+sx0 : sy*src.width+sx1]
		dstStart := (sy+y)*f.width + sx0 + x
		copy(f.cells[dstStart:dstStart+len(srcRow)], srcRow)
	}
}

// ResizeTo returns a new width x height framebuffer resampled from f.
//
// Each destination cell maps linearly onto a source rectangle which is
// sampled on a fixed 5x5 grid. Samples outside the source are discarded
// and the rest averaged per channel with integer truncation. The first
// sample is the rectangle origin, which lies inside any non-empty source.
func (f *Framebuffer) ResizeTo(width, height int) *Framebuffer {
	dst := NewFramebuffer(width, height, Black)
	dst.glyph = f.glyph
	if f.width == 0 || f.height == 0 {
		return dst
	}

	sw, sh := f.width, f.height
	dw, dh := dst.width, dst.height
	for dy := range dh {
		for dx := range dw {
			var r, g, b, n int
			for j := range samplesPerAxis {
				// sample row = (dy + j/5) * sh / dh, in integers
				sy := (dy*samplesPerAxis + j) * sh / (dh * samplesPerAxis)
				if sy < 0 || sy >= sh {
					continue
				}
				for i := range samplesPerAxis {
					sx := (dx*samplesPerAxis + i) * sw / (dw * samplesPerAxis)
					if sx < 0 || sx >= sw {
						continue
					}
					c := f.cells[sy*sw+sx]
					r += int(c.R)
					g += int(c.G)
					b += int(c.B)
					n++
				}
			}
			if n > 0 {
				dst.cells[dy*dw+dx] = RGB(uint8(r/n), uint8(g/n), uint8(b/n))
			}
		}
	}
	return dst
}

// NewResized is shorthand for src.ResizeTo(width, height).
func NewResized(src *Framebuffer, width, height int) *Framebuffer {
	return src.ResizeTo(width, height)
}

// Serialize writes the buffer as colored glyphs and flushes out.
//
// Within a row a color-set sequence is emitted only when the color
// changes. Every row starts with an explicit color and ends with a reset;
// rows are separated by newlines.
func (f *Framebuffer) Serialize(out Sink) error {
	for y := range f.height {
		row := f.cells[y*f.width : (y+1)*f.width]
		for x, c := range row {
			if x == 0 || c != row[x-1] {
				if _, err := out.Write(c.AppendTo(f.seq[:0])); err != nil {
					return fmt.Errorf("writing color: %w: %w", ErrIO, err)
				}
			}
			if _, err := out.Write(f.glyph); err != nil {
				return fmt.Errorf("writing glyph: %w: %w", ErrIO, err)
			}
		}
		if err := ResetColor(out); err != nil {
			return fmt.Errorf("writing reset: %w: %w", ErrIO, err)
		}
		if y != f.height-1 {
			if _, err := out.Write(rowSeparator); err != nil {
				return fmt.Errorf("writing row separator: %w: %w", ErrIO, err)
			}
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w: %w", ErrIO, err)
	}
	return nil
}

// HideCursor hides (hide=true) or shows the terminal cursor.
func (f *Framebuffer) HideCursor(w io.Writer, hide bool) error {
	seq := cursorShow
	if hide {
		seq = cursorHide
	}
	if _, err := w.Write(seq); err != nil {
		return fmt.Errorf("toggling cursor: %w: %w", ErrIO, err)
	}
	return nil
}

// ResetCursor moves the cursor to the first column of the first row of
// the frame just serialized, so the next frame overwrites it in place.
func (f *Framebuffer) ResetCursor(w io.Writer) error {
	var seq []byte
	if f.height > 1 {
		seq = append(seq, "\x1b["...)
		seq = strconv.AppendInt(seq, int64(f.height-1), 10)
		seq = append(seq, 'F')
	} else {
		// ESC[0F would still move up one line
		seq = append(seq, '\r')
	}
	if _, err := w.Write(seq); err != nil {
		return fmt.Errorf("resetting cursor: %w: %w", ErrIO, err)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
