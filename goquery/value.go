package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
)

// valueScope is what a value rule may call back into.
type valueScope interface {
	nest(sel *goquery.Selection) *patentdoc.Node
	missing(sel *goquery.Selection, format string, args ...any)
}

// valueRule resolves a property value from one source. It reports false
// when the source does not apply to the tag.
type valueRule struct {
	source  string
	resolve func(scope valueScope, sel *goquery.Selection) (any, bool)
}

// valuePolicy lists the value sources of a property tag in precedence
// order. The first rule that applies wins; the text rule always applies.
var valuePolicy = []valueRule{
	{source: "itemscope", resolve: nestedValue},
	{source: "content", resolve: attrValue("content")},
	{source: "href", resolve: attrValue("href")},
	{source: "src", resolve: attrValue("src")},
	{source: "text", resolve: textValue},
}

func (p *pass) resolveValue(sel *goquery.Selection) any {
	for _, rule := range valuePolicy {
		if v, ok := rule.resolve(p, sel); ok {
			return v
		}
	}
	return nil
}

func nestedValue(scope valueScope, sel *goquery.Selection) (any, bool) {
	if _, ok := sel.Attr("itemscope"); !ok {
		return nil, false
	}
	return scope.nest(sel), true
}

func attrValue(name string) func(valueScope, *goquery.Selection) (any, bool) {
	return func(_ valueScope, sel *goquery.Selection) (any, bool) {
		v, ok := sel.Attr(name)
		if !ok {
			return nil, false
		}
		return v, true
	}
}

func textValue(scope valueScope, sel *goquery.Selection) (any, bool) {
	text, ok := ownString(sel.Get(0))
	if !ok {
		scope.missing(sel, "omitting property value for tag with nested content")
		return nil, true
	}
	return strings.TrimSpace(text), true
}
