// Package goquery implements patentdoc.Parser on top of goquery. It walks
// the microdata of a patent page (itemprop, itemscope and the repeat
// marker) and builds a nested, insertion-ordered document.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
	"golang.org/x/net/html"
)

// Ensure Parser implements patentdoc.Parser at compile time.
var _ patentdoc.Parser = (*Parser)(nil)

// Parser extracts microdata documents from patent pages.
// Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	diagnose patentdoc.DiagnosticFunc
}

// Option configures a Parser.
type Option func(*Parser)

// WithDiagnostics sets the function receiving recovered irregularities
// (missing fields, unknown sections). Diagnostics are discarded by default.
func WithDiagnostics(fn patentdoc.DiagnosticFunc) Option {
	return func(p *Parser) {
		p.diagnose = fn
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.diagnose == nil {
		p.diagnose = func(patentdoc.Diagnostic) {}
	}
	return p
}

// Parse converts a patent page into a document.
//
// The generic microdata pass runs over the page's <article>, skipping the
// special sections (abstract, description, claims, application, family).
// Each of those is then extracted by its own handler and attached at the
// document root. Returns ESTRUCTURE if the page has no <article>.
func (p *Parser) Parse(page string) (*patentdoc.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, patentdoc.Errorf(patentdoc.ESTRUCTURE, "failed to parse HTML: %v", err)
	}

	// The HTML parser always synthesizes <html>, so <article> is the only
	// structural requirement.
	article := doc.Find("article").First()
	if article.Length() == 0 {
		return nil, patentdoc.Errorf(patentdoc.ESTRUCTURE, "could not find <article> tag; is the URL a patent page?")
	}

	data := patentdoc.NewNode()
	newPass(p.diagnose).visit(article, data)

	// Special sections are skipped by the generic pass above and attached
	// at the root here. Other itemscope sections outside a special section
	// are reported as unknown.
	sections := newPass(p.diagnose)
	article.Find("section[itemscope][itemprop]").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sectionCandidate(sel)
		if !ok || insideMarker(sel) {
			return
		}
		data.Set(name, sections.section(name, sel))
	})

	sections.publicationNumbers(article, data)

	return data, nil
}

// pass holds the scratch state of one traversal. Every tag contributes to
// the output at most once per pass.
type pass struct {
	visited  map[*html.Node]struct{}
	diagnose patentdoc.DiagnosticFunc
}

func newPass(diagnose patentdoc.DiagnosticFunc) *pass {
	return &pass{
		visited:  make(map[*html.Node]struct{}),
		diagnose: diagnose,
	}
}

// markVisited records the tag and reports whether it was new.
func (p *pass) markVisited(sel *goquery.Selection) bool {
	n := sel.Get(0)
	if _, ok := p.visited[n]; ok {
		return false
	}
	p.visited[n] = struct{}{}
	return true
}

func (p *pass) warn(kind patentdoc.DiagnosticKind, sel *goquery.Selection, format string, args ...any) {
	d := patentdoc.Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if sel != nil && sel.Length() > 0 {
		d.Tag = describe(sel.Get(0))
	}
	p.diagnose(d)
}

// missing reports a DiagFieldMissing diagnostic.
func (p *pass) missing(sel *goquery.Selection, format string, args ...any) {
	p.warn(patentdoc.DiagFieldMissing, sel, format, args...)
}
