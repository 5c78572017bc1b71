// Package render prints teletext pages to the terminal.
package render

import (
	"bufio"
	"fmt"
	"io"

	"teletext/teletext"
)

// Page writes every row of p through cw, cells back to back, one line per
// row. Nothing is padded or wrapped.
func Page(w io.Writer, p *teletext.Page, cw ColorWriter) error {
	bw := bufio.NewWriter(w)
	for y, row := range p.Rows {
		for x, cell := range row {
			if err := cw.WriteColored(bw, cell.FG, cell.BG, cell.Text); err != nil {
				return fmt.Errorf("writing row %d cell %d: %w", y, x, err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// NewColorWriter returns the plain writer when plain is set and the 24-bit
// ANSI writer otherwise.
func NewColorWriter(plain bool) ColorWriter {
	if plain {
		return PlainWriter{}
	}
	return ANSIWriter{}
}
