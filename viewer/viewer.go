// Package viewer runs the interactive page loop: fetch, parse, render, and
// fall back to the last good page when anything goes wrong.
package viewer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"teletext/dom"
	"teletext/render"
	"teletext/teletext"
)

// FetchFunc returns the raw markup of a page on a channel.
type FetchFunc func(ctx context.Context, channel, page string) (string, error)

// Options configures a Viewer.
type Options struct {
	Fetch    FetchFunc
	Parser   *teletext.Parser
	Colors   render.ColorWriter
	Out      io.Writer // page output
	Status   io.Writer // prompt and error indicator
	Clear    bool      // clear the screen before each page
	Columns  int       // terminal width, 0 when unknown
	Channels map[string]bool
}

// Viewer shows teletext pages and remembers the last one that rendered.
type Viewer struct {
	opts    Options
	channel string
	current string
	last    *teletext.Page
	links   []string
}

// New creates a viewer starting on channel.
func New(channel string, opts Options) *Viewer {
	if opts.Parser == nil {
		opts.Parser = teletext.NewParser(teletext.ParseOptions{})
	}
	if opts.Colors == nil {
		opts.Colors = render.PlainWriter{}
	}
	return &Viewer{opts: opts, channel: channel}
}

// Current returns the number of the page on screen.
func (v *Viewer) Current() string { return v.current }

// Channel returns the active channel.
func (v *Viewer) Channel() string { return v.channel }

// Load fetches and parses a page without touching the screen.
func (v *Viewer) Load(ctx context.Context, page string) (*teletext.Page, *dom.Document, error) {
	markup, err := v.opts.Fetch(ctx, v.channel, page)
	if err != nil {
		return nil, nil, err
	}
	doc, err := dom.ParseString(markup)
	if err != nil {
		return nil, nil, err
	}
	p, err := v.opts.Parser.ParsePage(doc.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("page %s: %w", page, err)
	}
	return p, doc, nil
}

// Show loads and renders page. On failure the previous page is redrawn,
// an error indicator is printed, and the current page number is kept.
func (v *Viewer) Show(ctx context.Context, page string) error {
	p, doc, err := v.Load(ctx, page)
	if err != nil {
		slog.WarnContext(ctx, "page failed", "channel", v.channel, "page", page, "error", err)
		if v.last != nil {
			if rerr := v.draw(v.last); rerr != nil {
				return rerr
			}
		}
		fmt.Fprintf(v.opts.Status, "Error: %v\n", err)
		return err
	}

	if err := v.draw(p); err != nil {
		return err
	}
	v.current = page
	v.last = p
	v.links = doc.PageLinks()

	if v.opts.Columns > 0 {
		if w := p.Width(); w > v.opts.Columns {
			slog.WarnContext(ctx, "terminal narrower than page", "columns", v.opts.Columns, "page_width", w)
		}
	}
	slog.InfoContext(ctx, "page shown", "channel", v.channel, "page", page, "title", doc.Title(), "rows", len(p.Rows))
	return nil
}

func (v *Viewer) draw(p *teletext.Page) error {
	if v.opts.Clear {
		io.WriteString(v.opts.Out, render.ClearScreen+render.CursorHome)
	}
	if err := render.Page(v.opts.Out, p, v.opts.Colors); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

// RenderError means the page could not be written to the output.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("rendering page: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// Run shows start, then reads commands from in until quit or EOF.
// Page errors are reported and the loop continues; only render and
// input errors end it.
func (v *Viewer) Run(ctx context.Context, start string, in io.Reader, prompt bool) error {
	if _, err := v.step(ctx, start); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprintf(v.opts.Status, "%s %s> ", v.channel, v.displayPage())
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintf(v.opts.Status, "Error: %v\n", err)
			continue
		}

		switch cmd.Kind {
		case CmdQuit:
			return nil
		case CmdLinks:
			v.printLinks()
			continue
		case CmdChannel:
			if !v.opts.Channels[cmd.Arg] {
				fmt.Fprintf(v.opts.Status, "Error: unknown channel %q\n", cmd.Arg)
				continue
			}
			prev := v.channel
			v.channel = cmd.Arg
			shown, err := v.step(ctx, fmt.Sprint(FirstPage))
			if err != nil {
				return err
			}
			if !shown {
				v.channel = prev
			}
			continue
		}

		if _, err := v.step(ctx, v.target(cmd)); err != nil {
			return err
		}
	}
}

// step shows a page and swallows page-level errors so the loop keeps going.
// Only render errors are returned.
func (v *Viewer) step(ctx context.Context, page string) (shown bool, err error) {
	err = v.Show(ctx, page)
	var re *RenderError
	if errors.As(err, &re) {
		return false, err
	}
	return err == nil, nil
}

func (v *Viewer) target(cmd Command) string {
	switch cmd.Kind {
	case CmdNext:
		return stepPage(v.pageOr(fmt.Sprint(FirstPage-1)), 1)
	case CmdPrev:
		return stepPage(v.pageOr(fmt.Sprint(FirstPage+1)), -1)
	case CmdReload:
		return v.pageOr(fmt.Sprint(FirstPage))
	default:
		return cmd.Arg
	}
}

func (v *Viewer) pageOr(fallback string) string {
	if v.current == "" {
		return fallback
	}
	return v.current
}

func (v *Viewer) displayPage() string {
	return v.pageOr("---")
}

func (v *Viewer) printLinks() {
	if len(v.links) == 0 {
		fmt.Fprintln(v.opts.Status, "No linked pages")
		return
	}
	fmt.Fprintf(v.opts.Status, "Linked pages: %s\n", strings.Join(v.links, " "))
}
