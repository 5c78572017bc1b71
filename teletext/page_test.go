package teletext

import (
	"errors"
	"testing"

	"teletext/dom"
)

func document(grid *dom.Node) *dom.Node {
	return &dom.Node{Kind: dom.OtherNode, Children: []*dom.Node{
		dom.Element("html", nil,
			dom.Element("head", nil),
			dom.Element("body", nil,
				dom.Element("div", []string{"nav"}),
				grid,
			),
		),
	}}
}

func TestParsePage(t *testing.T) {
	grid := dom.Element("div", []string{"grid"},
		dom.Element("div", []string{"row"},
			dom.Element("span", []string{"c00ff00", "bcff0000"}, dom.Text("Hi")),
			dom.Element("span", nil, dom.Text(" there")),
		),
		dom.Element("div", []string{"row"},
			dom.Element("br", nil),
		),
		dom.Element("div", []string{"row"}),
	)

	page, err := ParsePage(document(grid))
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if len(page.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(page.Rows))
	}
	if len(page.Rows[0]) != 2 || len(page.Rows[1]) != 1 || len(page.Rows[2]) != 0 {
		t.Fatalf("row lengths = %d, %d, %d", len(page.Rows[0]), len(page.Rows[1]), len(page.Rows[2]))
	}
	if page.Rows[0][0] != (Cell{Text: "Hi", FG: 0x00FF00, BG: 0xFF0000}) {
		t.Errorf("first cell = %+v", page.Rows[0][0])
	}
	if page.Rows[0][1].Text != " there" {
		t.Errorf("second cell text = %q", page.Rows[0][1].Text)
	}
	if !page.Rows[1][0].IsBlank() {
		t.Errorf("expected blank sentinel, got %+v", page.Rows[1][0])
	}
	if w := page.Width(); w != 8 {
		t.Errorf("Width() = %d, expected 8", w)
	}
}

func TestParsePageStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		root *dom.Node
		hop  string
	}{
		{"nil root", nil, "root"},
		{"empty document", &dom.Node{Kind: dom.OtherNode}, "html"},
		{"html is text", &dom.Node{Kind: dom.OtherNode, Children: []*dom.Node{dom.Text("hello")}}, "html"},
		{"no body", &dom.Node{Kind: dom.OtherNode, Children: []*dom.Node{
			dom.Element("html", nil, dom.Element("head", nil)),
		}}, "body"},
		{"body has fewer than two children", &dom.Node{Kind: dom.OtherNode, Children: []*dom.Node{
			dom.Element("html", nil, dom.Element("head", nil), dom.Element("body", nil, dom.Element("div", nil))),
		}}, "grid"},
		{"grid is comment", &dom.Node{Kind: dom.OtherNode, Children: []*dom.Node{
			dom.Element("html", nil, dom.Element("head", nil), dom.Element("body", nil, dom.Element("div", nil), dom.Comment("x"))),
		}}, "grid"},
		{"row is text", document(dom.Element("div", nil, dom.Text("loose"))), "row 0"},
		{"cell is comment", document(dom.Element("div", nil,
			dom.Element("div", nil, dom.Element("span", nil, dom.Text("a")), dom.Comment("b")),
		)), "row 0, cell 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParsePage(tt.root)
			if page != nil {
				t.Errorf("expected no page, got %d rows", len(page.Rows))
			}
			var pse *ParseStructureError
			if !errors.As(err, &pse) {
				t.Fatalf("expected ParseStructureError, got %v", err)
			}
			if pse.Hop != tt.hop {
				t.Errorf("Hop = %q, expected %q", pse.Hop, tt.hop)
			}
		})
	}
}

func TestParsePageInvalidChild(t *testing.T) {
	grid := dom.Element("div", nil,
		dom.Element("div", nil, dom.Element("span", nil, dom.Text("ok"))),
		dom.Element("div", nil,
			dom.Element("span", nil, dom.Text("ok")),
			dom.Element("span", nil, dom.Comment("bad")),
		),
	)
	page, err := ParsePage(document(grid))
	if page != nil {
		t.Error("expected no page")
	}
	var ice *InvalidChildError
	if !errors.As(err, &ice) {
		t.Fatalf("expected InvalidChildError, got %v", err)
	}
	var ce *CellError
	if !errors.As(err, &ce) || ce.Row != 1 || ce.Col != 1 {
		t.Errorf("expected CellError at row 1 cell 1, got %v", err)
	}
}

func TestParsePageFromMarkup(t *testing.T) {
	doc, err := dom.ParseString(`<!DOCTYPE html>
<html><head><title>100</title></head>
<body>
<div id="header"></div>
<div id="content">
 <div class="row"><span class="c00ff00 bcff0000">Hi</span><span class="bc000033"><span class="c112233 bc445566">X</span></span></div>
 <div class="row"><span class="teletextlinedrawregular c0000ff">5j</span><br></div>
</div>
</body></html>`)
	if err != nil {
		t.Fatalf("dom.ParseString failed: %v", err)
	}
	page, err := ParsePage(doc.Root)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	expected := [][]Cell{
		{{Text: "Hi", FG: 0x00FF00, BG: 0xFF0000}, {Text: "X", FG: 0x112233, BG: 0x000033}},
		{{Text: "▌▐", FG: 0x0000FF, BG: 0x000000}, {}},
	}
	if len(page.Rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(page.Rows))
	}
	for y, row := range expected {
		if len(page.Rows[y]) != len(row) {
			t.Fatalf("row %d: expected %d cells, got %d", y, len(row), len(page.Rows[y]))
		}
		for x, cell := range row {
			if page.Rows[y][x] != cell {
				t.Errorf("row %d cell %d = %+v, expected %+v", y, x, page.Rows[y][x], cell)
			}
		}
	}
}

func TestParsePageSkipsIndentation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rows    []int
	}{
		{"empty row", "\n<div class=\"row\"><span class=\"c00ff00\">Hi</span></div>\n<div class=\"row\">\n</div>\n", []int{1, 0}},
		{"indented row", "<div class=\"row\">\n  <span>a</span>\n  <span>b</span>\n</div>", []int{2}},
		{"empty grid", "\n", nil},
		{"space row", "<div class=\"row\"> </div>", []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dom.ParseString(`<html><head></head><body><div id="header"></div><div id="content">` +
				tt.content + `</div></body></html>`)
			if err != nil {
				t.Fatalf("dom.ParseString failed: %v", err)
			}
			page, err := ParsePage(doc.Root)
			if err != nil {
				t.Fatalf("ParsePage failed: %v", err)
			}
			if len(page.Rows) != len(tt.rows) {
				t.Fatalf("expected %d rows, got %d", len(tt.rows), len(page.Rows))
			}
			for y, n := range tt.rows {
				if len(page.Rows[y]) != n {
					t.Errorf("row %d: expected %d cells, got %d", y, n, len(page.Rows[y]))
				}
			}
		})
	}
}

func TestParsePageKeepsSpaceCell(t *testing.T) {
	doc, err := dom.ParseString(`<html><head></head><body><div></div><div>` +
		`<div class="row"><span class="c1"> </span><span>&nbsp;</span></div></div></body></html>`)
	if err != nil {
		t.Fatalf("dom.ParseString failed: %v", err)
	}
	page, err := ParsePage(doc.Root)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	expected := []Cell{
		{Text: " ", FG: 0x000001, BG: DefaultBackground},
		{Text: "\u00a0", FG: DefaultForeground, BG: DefaultBackground},
	}
	if len(page.Rows) != 1 || len(page.Rows[0]) != len(expected) {
		t.Fatalf("rows = %+v", page.Rows)
	}
	for x, cell := range expected {
		if page.Rows[0][x] != cell {
			t.Errorf("cell %d = %+v, expected %+v", x, page.Rows[0][x], cell)
		}
	}
}
