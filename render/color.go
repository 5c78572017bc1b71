package render

import (
	"fmt"
	"io"

	"teletext/teletext"
)

// ColorWriter writes text in a foreground/background color pair.
type ColorWriter interface {
	WriteColored(w io.Writer, fg, bg teletext.RGB, text string) error
}

// ANSIWriter colors text with 24-bit SGR sequences and resets afterwards.
type ANSIWriter struct{}

func (ANSIWriter) WriteColored(w io.Writer, fg, bg teletext.RGB, text string) error {
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, styleSequence(fg, bg)+text+Reset)
	return err
}

// PlainWriter drops colors, for pipes and dumb terminals.
type PlainWriter struct{}

func (PlainWriter) WriteColored(w io.Writer, _, _ teletext.RGB, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

func styleSequence(fg, bg teletext.RGB) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm",
		fg.R(), fg.G(), fg.B(), bg.R(), bg.G(), bg.B())
}
