// ABOUTME: Display width of the pixel glyph in terminal columns
// ABOUTME: Grapheme-aware so emoji and East Asian glyphs count as the cells they really occupy

package gfx

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GlyphWidth returns how many terminal columns glyph occupies when printed.
// Control characters count as zero.
func GlyphWidth(glyph string) int {
	if isPlainASCII(glyph) {
		return len(glyph)
	}
	w := 0
	state := -1
	for len(glyph) > 0 {
		var cluster string
		cluster, glyph, _, state = uniseg.FirstGraphemeClusterInString(glyph, state)
		r, _ := utf8.DecodeRuneInString(cluster)
		w += runewidth.RuneWidth(r)
	}
	return w
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
