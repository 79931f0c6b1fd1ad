// ABOUTME: 24-bit RGB color with a constant-length fg+bg SGR encoding
// ABOUTME: Channels are always three zero-padded digits so the hot path never formats numbers

package gfx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Color is an immutable 24-bit RGB triple. Compare with ==.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Grey returns a color with all three channels set to v.
func Grey(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Named colors.
var (
	Black  = RGB(0, 0, 0)
	White  = RGB(255, 255, 255)
	Red    = RGB(255, 0, 0)
	Green  = RGB(0, 255, 0)
	Blue   = RGB(0, 0, 255)
	Cyan   = RGB(0, 255, 255)
	Pink   = RGB(255, 0, 255)
	Yellow = RGB(255, 255, 0)
)

// colorSetTemplate sets foreground and background to the same color.
// Offsets of the channel digits are fixed; see channelOffsets.
const colorSetTemplate = "\x1b[38;2;000;000;000m\x1b[48;2;000;000;000m"

// ColorSetLen is the byte length of every sequence written by Apply.
const ColorSetLen = len(colorSetTemplate)

var (
	resetSeq = []byte("\x1b[0m")

	// fg R, G, B then bg R, G, B
	channelOffsets = [6]int{7, 11, 15, 26, 30, 34}
)

// putChannel writes v as exactly three ASCII digits into dst[0:3].
func putChannel(dst []byte, v uint8) {
	dst[0] = '0' + v/100
	dst[1] = '0' + v/10%10
	dst[2] = '0' + v%10
}

// AppendTo appends the combined foreground+background color-set sequence
// to dst. With ColorSetLen bytes of spare capacity it does not allocate.
func (c Color) AppendTo(dst []byte) []byte {
	n := len(dst)
	dst = append(dst, colorSetTemplate...)
	seq := dst[n:]

	channels := [3]uint8{c.R, c.G, c.B}
	for i, off := range channelOffsets {
		putChannel(seq[off:off+3], channels[i%3])
	}
	return dst
}

// Apply writes the combined foreground+background color-set sequence.
func (c Color) Apply(w io.Writer) error {
	var seq [ColorSetLen]byte
	_, err := w.Write(c.AppendTo(seq[:0]))
	return err
}

// ResetColor writes the neutral SGR reset sequence.
func ResetColor(w io.Writer) error {
	_, err := w.Write(resetSeq)
	return err
}

// String renders the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("parsing color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
