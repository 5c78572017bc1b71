package teletext

import (
	"testing"
	"unicode/utf8"
)

func TestTranslateGlyph(t *testing.T) {
	tests := []struct {
		name     string
		in       rune
		expected rune
	}{
		{"empty mosaic", 0x20, ' '},
		{"top left", 0x21, 0x1FB00},
		{"top right", 0x22, 0x1FB01},
		{"top row", 0x23, 0x1FB02},
		{"left column", 0x35, '▌'},
		{"right column", 0x6A, '▐'},
		{"full block", 0x7F, '█'},
		{"bottom right only", 0x60, 0x1FB1E},
		{"last sextant", 0x7E, 0x1FB3B},
		{"capital passes through", 'A', 'A'},
		{"at sign passes through", '@', '@'},
		{"non ascii passes through", 'ä', 'ä'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateGlyph(tt.in); got != tt.expected {
				t.Errorf("TranslateGlyph(%U) = %U, expected %U", tt.in, got, tt.expected)
			}
		})
	}
}

func TestTranslateGlyphIdempotentOutsideTable(t *testing.T) {
	for _, r := range []rune{'A', 'Z', '@', '_', 'é', '─', 0x1FB00, '█', 0xE000} {
		if _, inTable := glyphs[r]; inTable {
			t.Fatalf("%U unexpectedly in table", r)
		}
		once := TranslateGlyph(r)
		if once != r || TranslateGlyph(once) != once {
			t.Errorf("%U: translate not identity outside table", r)
		}
	}
}

func TestGlyphTableIsComplete(t *testing.T) {
	if len(glyphs) != 64 {
		t.Fatalf("table has %d entries, expected 64", len(glyphs))
	}
	seen := make(map[rune]rune)
	for src, dst := range glyphs {
		if prev, dup := seen[dst]; dup {
			t.Errorf("%U and %U both map to %U", prev, src, dst)
		}
		seen[dst] = src
	}
}

func TestTranslateGlyphsPreservesLength(t *testing.T) {
	in := "A!#5`\x7fZ"
	out := TranslateGlyphs(in)
	if utf8.RuneCountInString(out) != utf8.RuneCountInString(in) {
		t.Fatalf("rune count changed: %q -> %q", in, out)
	}
	runes := []rune(out)
	if runes[0] != 'A' || runes[6] != 'Z' {
		t.Errorf("capitals changed: %q", out)
	}
	if runes[5] != '█' {
		t.Errorf("0x7F = %U, expected full block", runes[5])
	}
}
