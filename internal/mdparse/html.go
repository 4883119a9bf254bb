package mdparse

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// htmlToText parses raw HTML and returns its visible text. <br> becomes a
// newline, block-level closings insert newlines, and script/style bodies are
// dropped. Malformed input comes back unchanged; the x/net parser itself
// accepts anything.
func htmlToText(raw string) string {
	doc, err := xhtml.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			b.WriteString(n.Data)
		case xhtml.ElementNode:
			switch strings.ToLower(n.Data) {
			case "br":
				b.WriteString("\n")
				return
			case "script", "style":
				return
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
			switch strings.ToLower(n.Data) {
			case "p", "div", "li":
				b.WriteString("\n")
			}
		default:
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		}
	}
	walk(doc)

	return b.String()
}
