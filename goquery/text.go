package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
	"golang.org/x/net/html"
)

// ownString returns the tag's direct text: the text of its only child,
// following chains of single-child elements. It reports false when the
// tag has no children, several children, or a non-text leaf.
func ownString(n *html.Node) (string, bool) {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return "", false
		}
		switch c.Type {
		case html.TextNode:
			return c.Data, true
		case html.ElementNode:
			n = c
		default:
			return "", false
		}
	}
}

// strippedText concatenates every text fragment under the selection in
// document order, each trimmed of surrounding whitespace.
func strippedText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		walkText(n, func(s string) {
			b.WriteString(strings.TrimSpace(s))
		})
	}
	return b.String()
}

func walkText(n *html.Node, fn func(string)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			fn(c.Data)
		case html.ElementNode:
			walkText(c, fn)
		}
	}
}

// attrsToFields copies every attribute except class into dst, converting
// hyphenated names to camelCase.
func attrsToFields(sel *goquery.Selection, dst *patentdoc.Node) {
	n := sel.Get(0)
	for _, a := range n.Attr {
		if a.Key == "class" {
			continue
		}
		dst.Set(hyphenatedToCamel(a.Key), a.Val)
	}
}

// describe renders a tag's name and attributes for diagnostics.
func describe(n *html.Node) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteString(" ")
		b.WriteString(a.Key)
		if a.Val != "" {
			b.WriteString(`="`)
			b.WriteString(a.Val)
			b.WriteString(`"`)
		}
	}
	b.WriteString(">")
	return b.String()
}
