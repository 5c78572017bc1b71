package teletext

import (
	"slices"

	"golang.org/x/net/html"

	"teletext/dom"
)

// Cell is one colored text run of a row.
type Cell struct {
	Text string
	FG   RGB
	BG   RGB
}

// blankCell stands in for a line break. Zero colors mean "no color intent"
// and keep it distinct from an empty default-colored cell.
var blankCell = Cell{}

// IsBlank reports whether c is the line-break sentinel.
func (c Cell) IsBlank() bool {
	return c == blankCell
}

// ParseOptions configures a Parser.
type ParseOptions struct {
	// StrictColors turns malformed color classes into errors instead of
	// ignoring them.
	StrictColors bool
}

// Parser converts teletext document trees into pages.
type Parser struct {
	opts ParseOptions
}

// NewParser creates a parser with the given options.
func NewParser(opts ParseOptions) *Parser {
	return &Parser{opts: opts}
}

var defaultParser = NewParser(ParseOptions{})

// ParseCell converts a cell element using the default, lenient parser.
func ParseCell(n *dom.Node) (Cell, error) {
	return defaultParser.ParseCell(n)
}

// ParseCell converts one cell element into a Cell.
//
// Colors resolve as defaults, then the cell's own classes, then the
// foreground of a nested element directly under the cell. The nested
// element's background is ignored.
func (p *Parser) ParseCell(n *dom.Node) (Cell, error) {
	if n.Tag == "br" {
		return blankCell, nil
	}

	fg, bg, err := p.colors(n.Classes)
	if err != nil {
		return Cell{}, err
	}

	var text string
	if len(n.Children) > 0 {
		switch child := n.Children[0]; child.Kind {
		case dom.TextNode:
			text = html.UnescapeString(child.Text)
		case dom.ElementNode:
			nested, err := p.ParseCell(child)
			if err != nil {
				return Cell{}, err
			}
			text = nested.Text
			nestedFG, _, err := p.colors(child.Classes)
			if err != nil {
				return Cell{}, err
			}
			if nestedFG != nil {
				fg = nestedFG
			}
		default:
			return Cell{}, &InvalidChildError{Kind: child.Kind}
		}
	}

	cell := Cell{Text: text, FG: DefaultForeground, BG: DefaultBackground}
	if fg != nil {
		cell.FG = *fg
	}
	if bg != nil {
		cell.BG = *bg
	}
	if slices.Contains(n.Classes, LineDrawClass) {
		cell.Text = TranslateGlyphs(cell.Text)
	}
	return cell, nil
}

func (p *Parser) colors(classes []string) (fg, bg *RGB, err error) {
	if p.opts.StrictColors {
		return ColorsFromClassesStrict(classes)
	}
	fg, bg = ColorsFromClasses(classes)
	return fg, bg, nil
}
