// Debug tool to analyze teletext page structure
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"teletext/dom"
	"teletext/fetcher"
	"teletext/teletext"
)

func main() {
	maxDepth := pflag.IntP("depth", "d", 4, "Maximum tree depth to print")
	pflag.Parse()

	src := "https://teletext.zdf.de/teletext/zdf/seiten/klassisch/100.html"
	if pflag.NArg() > 0 {
		src = pflag.Arg(0)
	}

	markup, err := load(src)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	doc, err := dom.ParseString(markup)
	if err != nil {
		fmt.Println("Parse error:", err)
		os.Exit(1)
	}

	fmt.Printf("Title: %q\n", doc.Title())
	fmt.Printf("Linked pages: %s\n\n", strings.Join(doc.PageLinks(), " "))
	analyzeNode(os.Stdout, doc.Root, 0, *maxDepth)

	grid, err := teletext.LocateGrid(doc.Root)
	if err != nil {
		fmt.Println("\nGrid not found:", err)
		os.Exit(1)
	}
	fmt.Printf("\nGrid <%s> has %d rows\n", grid.Tag, len(grid.Children))

	if _, err := teletext.ParsePage(doc.Root); err != nil {
		var ce *teletext.CellError
		if errors.As(err, &ce) {
			fmt.Printf("Cell row %d col %d failed: %v\n", ce.Row, ce.Col, ce.Err)
		} else {
			fmt.Println("Page error:", err)
		}
		os.Exit(1)
	}
	fmt.Println("Page parses cleanly")
}

func load(src string) (string, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		result, err := fetcher.Simple(context.Background(), src)
		if err != nil {
			return "", err
		}
		return result.HTML, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// analyzeNode prints children with their index, the way the grid path
// addresses them.
func analyzeNode(w io.Writer, n *dom.Node, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	indent := strings.Repeat("  ", depth)

	for i, c := range n.Children {
		switch c.Kind {
		case dom.ElementNode:
			attrs := ""
			if len(c.Classes) > 0 {
				attrs = fmt.Sprintf(" class=%q", strings.Join(c.Classes, " "))
			}
			fmt.Fprintf(w, "%s[%d] <%s%s>\n", indent, i, c.Tag, attrs)
			analyzeNode(w, c, depth+1, maxDepth)
		case dom.TextNode:
			text := truncate(c.Text, 50)
			fmt.Fprintf(w, "%s[%d] TEXT: %q\n", indent, i, text)
		default:
			fmt.Fprintf(w, "%s[%d] %s\n", indent, i, strings.ToUpper(c.Kind.String()))
		}
	}
}
