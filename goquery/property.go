package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
)

// visit applies the generic microdata rules to a single tag, writing into
// current. Tags without itemprop are transparent: their children write
// into the same node.
func (p *pass) visit(sel *goquery.Selection, current *patentdoc.Node) {
	if !p.markVisited(sel) {
		return
	}

	if isLabel(sel) {
		p.segment(sel, current)
		return
	}

	name, _ := sel.Attr("itemprop")
	if name == "" {
		p.visitChildren(sel, current)
		return
	}

	// Section markers are produced by the section handlers only.
	if _, ok := sectionName(sel); ok {
		return
	}

	value := p.resolveValue(sel)

	if _, ok := sel.Attr("repeat"); ok {
		if !current.Append(name, value) {
			p.missing(sel, "repeated property %q follows a scalar occurrence; earlier value dropped", name)
		}
		return
	}
	current.Set(name, value)
}

func (p *pass) visitChildren(sel *goquery.Selection, current *patentdoc.Node) {
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		p.visit(child, current)
	})
}

// nest parses the children of an itemscope tag into a fresh node.
func (p *pass) nest(sel *goquery.Selection) *patentdoc.Node {
	child := patentdoc.NewNode()
	p.visitChildren(sel, child)
	return child
}
