// Package dom turns raw markup into the small generic tree the teletext
// parser walks.
package dom

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NodeKind identifies what a Node holds.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	CommentNode
	OtherNode
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "other"
	}
}

// Node is one node of the generic tree.
type Node struct {
	Kind     NodeKind
	Tag      string   // element tag name, lowercase
	Classes  []string // element class list in source order
	Text     string   // text or comment content, still entity-escaped
	Children []*Node
}

// Element builds an element node. Handy for tests and fixtures.
func Element(tag string, classes []string, children ...*Node) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Classes: classes, Children: children}
}

// Text builds a text node holding escaped markup text.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// Comment builds a comment node.
func Comment(s string) *Node {
	return &Node{Kind: CommentNode, Text: s}
}

// Document is a parsed page.
type Document struct {
	Root *Node
	doc  *goquery.Document
}

// Parse reads markup and builds the generic tree.
// The doctype and formatting whitespace between siblings are dropped, so
// sibling indices count only elements and meaningful text. A blank text
// node that is the only child (a space cell) is kept.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	root := &Node{Kind: OtherNode}
	for _, n := range doc.Nodes {
		appendChildren(root, n)
	}
	return &Document{Root: root, doc: doc}, nil
}

// ParseString parses markup from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func appendChildren(dst *Node, n *html.Node) {
	onlyChild := n.FirstChild != nil && n.FirstChild == n.LastChild
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && !onlyChild && isFormatting(c.Data) {
			continue
		}
		if child := convert(c); child != nil {
			dst.Children = append(dst.Children, child)
		}
	}
}

func convert(n *html.Node) *Node {
	switch n.Type {
	case html.ElementNode:
		el := &Node{Kind: ElementNode, Tag: n.Data, Classes: classes(n)}
		appendChildren(el, n)
		return el
	case html.TextNode:
		// The tokenizer already unescaped the text; keep it in markup form
		// so entity decoding stays with the cell parser.
		return &Node{Kind: TextNode, Text: html.EscapeString(n.Data)}
	case html.CommentNode:
		return &Node{Kind: CommentNode, Text: n.Data}
	case html.DoctypeNode:
		return nil
	default:
		return &Node{Kind: OtherNode}
	}
}

// isFormatting reports whether s is only ASCII whitespace. Non-breaking
// spaces are content.
func isFormatting(s string) bool {
	return strings.Trim(s, " \t\n\r\f") == ""
}

func classes(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// Title returns the document title, trimmed.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

var pageLinkRe = regexp.MustCompile(`(?:^|/)([1-8][0-9]{2})(?:_[0-9]+)?\.html?(?:[?#].*)?$`)

// PageLinks returns the three-digit page numbers the document links to,
// deduplicated, in source order.
func (d *Document) PageLinks() []string {
	var pages []string
	seen := make(map[string]bool)
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := pageLinkRe.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		pages = append(pages, m[1])
	})
	return pages
}
