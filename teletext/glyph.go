package teletext

import "strings"

// LineDrawClass marks a cell whose text uses the teletext mosaic font.
const LineDrawClass = "teletextlinedrawregular"

// glyphs maps teletext G1 contiguous mosaic codes to Unicode block and
// sextant characters. Built once at init, never written afterwards.
var glyphs = buildGlyphTable()

// buildGlyphTable fills the table for codes 0x20-0x3F and 0x60-0x7F.
// Bits 0-4 of the code and bit 6 select the six sextant cells:
// 0x01 top-left, 0x02 top-right, 0x04 middle-left, 0x08 middle-right,
// 0x10 bottom-left, 0x40 bottom-right.
func buildGlyphTable() map[rune]rune {
	table := make(map[rune]rune, 64)
	for code := rune(0x20); code <= 0x7F; code++ {
		if code >= 0x40 && code < 0x60 {
			continue // blast-through capitals
		}
		sextants := int(code&0x1F) | int(code&0x40)>>1
		table[code] = sextantRune(sextants)
	}
	return table
}

// sextantRune returns the glyph for a 6-bit sextant pattern (bit 0 is the
// top-left cell, bit 5 the bottom-right).
func sextantRune(pattern int) rune {
	switch pattern {
	case 0:
		return ' '
	case 0x15:
		return '▌' // left half block
	case 0x2A:
		return '▐' // right half block
	case 0x3F:
		return '█' // full block
	}
	// U+1FB00.. skips the four patterns above that already exist elsewhere.
	idx := pattern - 1
	if pattern > 0x15 {
		idx--
	}
	if pattern > 0x2A {
		idx--
	}
	return 0x1FB00 + rune(idx)
}

// TranslateGlyph returns the display rune for r, or r itself when the table
// has no entry.
func TranslateGlyph(r rune) rune {
	if g, ok := glyphs[r]; ok {
		return g
	}
	return r
}

// TranslateGlyphs maps every rune of s through TranslateGlyph.
func TranslateGlyphs(s string) string {
	return strings.Map(TranslateGlyph, s)
}
