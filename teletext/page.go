// Package teletext converts HTML teletext pages into grids of colored cells.
//
// The page markup is a fixed shape: the root's first child is the html
// element, its second child the body, the body's second child the grid.
// Every child of the grid is a row and every child of a row is a cell. Cell
// colors come from class names (c<hex> foreground, bc<hex> background).
package teletext

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"teletext/dom"
)

// Page is a parsed teletext page. Rows may have different lengths.
type Page struct {
	Rows [][]Cell
}

// Width returns the display width of the widest row in terminal columns.
func (p *Page) Width() int {
	widest := 0
	for _, row := range p.Rows {
		w := 0
		for _, cell := range row {
			w += runewidth.StringWidth(cell.Text)
		}
		widest = max(widest, w)
	}
	return widest
}

// hop is one step of the fixed walk from the document root to the grid.
type hop struct {
	name  string
	index int // child index to descend into
}

var gridPath = []hop{
	{name: "html", index: 0},
	{name: "body", index: 1},
	{name: "grid", index: 1},
}

// LocateGrid walks the fixed path from root to the grid container.
// Every node on the way must be an element with enough children.
func LocateGrid(root *dom.Node) (*dom.Node, error) {
	if root == nil {
		return nil, &ParseStructureError{Hop: "root", Reason: "no document"}
	}
	n := root
	for _, h := range gridPath {
		if len(n.Children) < h.index+1 {
			return nil, &ParseStructureError{
				Hop:    h.name,
				Reason: fmt.Sprintf("parent has %d children, need at least %d", len(n.Children), h.index+1),
			}
		}
		n = n.Children[h.index]
		if n.Kind != dom.ElementNode {
			return nil, &ParseStructureError{Hop: h.name, Reason: fmt.Sprintf("expected element, got %s", n.Kind)}
		}
	}
	return n, nil
}

// ParsePage converts a document tree using the default, lenient parser.
func ParsePage(root *dom.Node) (*Page, error) {
	return defaultParser.ParsePage(root)
}

// ParsePage locates the grid and converts every row and cell. Any error
// aborts the whole page; no partial page is returned.
func (p *Parser) ParsePage(root *dom.Node) (*Page, error) {
	grid, err := LocateGrid(root)
	if err != nil {
		return nil, err
	}

	page := &Page{Rows: make([][]Cell, 0, len(grid.Children))}
	y := 0
	for _, rowNode := range grid.Children {
		if isFormatting(rowNode) {
			continue
		}
		if rowNode.Kind != dom.ElementNode {
			return nil, &ParseStructureError{
				Hop:    fmt.Sprintf("row %d", y),
				Reason: fmt.Sprintf("expected element, got %s", rowNode.Kind),
			}
		}
		row := make([]Cell, 0, len(rowNode.Children))
		for _, cellNode := range rowNode.Children {
			if isFormatting(cellNode) {
				continue
			}
			x := len(row)
			if cellNode.Kind != dom.ElementNode {
				return nil, &ParseStructureError{
					Hop:    fmt.Sprintf("row %d, cell %d", y, x),
					Reason: fmt.Sprintf("expected element, got %s", cellNode.Kind),
				}
			}
			cell, err := p.ParseCell(cellNode)
			if err != nil {
				return nil, &CellError{Row: y, Col: x, Err: err}
			}
			row = append(row, cell)
		}
		page.Rows = append(page.Rows, row)
		y++
	}
	return page, nil
}

// isFormatting reports whether n is indentation text, such as the newline
// inside a pretty-printed empty row. Non-breaking spaces are content.
func isFormatting(n *dom.Node) bool {
	return n.Kind == dom.TextNode && strings.Trim(n.Text, " \t\n\r\f") == ""
}
