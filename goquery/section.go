package goquery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
	"golang.org/x/net/html"
)

// SectionNames are the itemprop values of <section> tags whose content
// does not follow the generic property model.
var SectionNames = []string{
	"abstract",
	"description",
	"claims",
	"application",
	"family",
}

// markerSelector matches the <section itemscope> tags of every special
// section.
var markerSelector = func() string {
	sels := make([]string, len(SectionNames))
	for i, name := range SectionNames {
		sels[i] = fmt.Sprintf("section[itemscope][itemprop=%q]", name)
	}
	return strings.Join(sels, ", ")
}()

// sectionName reports the name of a special section marker: a
// <section itemscope> whose itemprop is one of SectionNames. Markers are
// never parsed generically.
func sectionName(sel *goquery.Selection) (string, bool) {
	name, ok := sectionCandidate(sel)
	if !ok || !slices.Contains(SectionNames, name) {
		return "", false
	}
	return name, true
}

// sectionCandidate reports the itemprop of any <section itemscope> tag.
func sectionCandidate(sel *goquery.Selection) (string, bool) {
	if goquery.NodeName(sel) != "section" {
		return "", false
	}
	if _, ok := sel.Attr("itemscope"); !ok {
		return "", false
	}
	name, _ := sel.Attr("itemprop")
	return name, name != ""
}

// insideMarker reports whether sel is nested in a special section, whose
// handler owns all of its content.
func insideMarker(sel *goquery.Selection) bool {
	return sel.ParentsFiltered(markerSelector).Length() > 0
}

// section dispatches a section marker to its handler. Unknown sections
// yield nil.
func (p *pass) section(name string, sel *goquery.Selection) any {
	switch name {
	case "abstract":
		return p.abstract(sel)
	case "description":
		return p.description(sel)
	case "claims":
		return p.claims(sel)
	case "application":
		return p.application(sel)
	case "family":
		return p.family(sel)
	}
	p.warn(patentdoc.DiagUnknownSection, sel, "unhandled section %q", name)
	return nil
}

func (p *pass) abstract(section *goquery.Selection) *patentdoc.Node {
	out := patentdoc.NewNode()
	abstract := section.Find("abstract, .abstract").First()
	if abstract.Length() == 0 {
		p.missing(section, "abstract section has no content tag")
		return out
	}
	attrsToFields(abstract, out)
	out.Set("text", strippedText(abstract))
	return out
}

// descriptionPart accumulates the lines that follow one heading.
type descriptionPart struct {
	heading string
	lines   []any
}

func (d descriptionPart) node() *patentdoc.Node {
	n := patentdoc.NewNode()
	n.Set("heading", d.heading)
	n.Set("lines", d.lines)
	return n
}

func (p *pass) description(section *goquery.Selection) *patentdoc.Node {
	out := patentdoc.NewNode()
	desc := section.Find("description, .description").First()
	if desc.Length() == 0 {
		p.missing(section, "description section has no content tag")
		return out
	}
	attrsToFields(desc, out)

	// Lines before the first heading form an untitled first part, which
	// is present even when empty.
	parts := []any{}
	current := descriptionPart{lines: []any{}}
	desc.Find("*").Each(func(_ int, tag *goquery.Selection) {
		switch {
		case isHeading(tag):
			parts = append(parts, current.node())
			current = descriptionPart{heading: strippedText(tag), lines: []any{}}
		case isDescriptionLine(tag):
			current.lines = append(current.lines, p.descriptionLine(tag))
		}
	})
	parts = append(parts, current.node())

	out.Set("parts", parts)
	return out
}

func (p *pass) descriptionLine(tag *goquery.Selection) *patentdoc.Node {
	line := patentdoc.NewNode()
	if num, ok := tag.Closest("[num]").Attr("num"); ok {
		line.Set("num", num)
	} else {
		p.missing(tag, "description line has no line number")
		line.Set("num", nil)
	}
	line.Set("text", strippedText(tag))
	return line
}

func isHeading(sel *goquery.Selection) bool {
	return goquery.NodeName(sel) == "heading"
}

func isDescriptionLine(sel *goquery.Selection) bool {
	return goquery.NodeName(sel) == "description-line" || sel.HasClass("description-line")
}

// claims collects claim records. Pages nest claim markup at different
// depths, so claims are found through their claim-text leaves: each leaf
// is climbed to its nearest claim ancestor, and unique ancestors are kept
// in first-encounter order.
func (p *pass) claims(section *goquery.Selection) *patentdoc.Node {
	out := patentdoc.NewNode()
	container := section.Find("claims, .claims").First()
	if container.Length() == 0 {
		p.missing(section, "claims section has no claims container")
		return out
	}
	attrsToFields(container, out)

	claims := []any{}
	seen := make(map[*html.Node]struct{})
	container.Find(".claim-text, claim-text").Each(func(_ int, leaf *goquery.Selection) {
		claim := leaf.ParentsFiltered(".claim, claim").First()
		if claim.Length() == 0 {
			p.missing(leaf, "claim text outside of any claim")
			return
		}
		n := claim.Get(0)
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}

		record := patentdoc.NewNode()
		attrsToFields(claim, record)
		record.Set("text", strippedText(claim))
		claims = append(claims, record)
	})

	out.Set("claims", claims)
	return out
}

func (p *pass) application(section *goquery.Selection) *patentdoc.Node {
	return p.nest(section)
}

// family reads the family ID from the first heading ("...=ID") and merges
// the label group starting at the next heading.
func (p *pass) family(section *goquery.Selection) *patentdoc.Node {
	out := patentdoc.NewNode()
	idTag := section.Find("h2").First()
	if idTag.Length() == 0 {
		p.missing(section, "family section has no heading")
		return out
	}
	text := strippedText(idTag)
	out.Set("id", text[strings.LastIndex(text, "=")+1:])

	content := idTag.NextAllFiltered("h2").First()
	if content.Length() == 0 {
		p.missing(idTag, "family section has no content heading")
		return out
	}
	fields := patentdoc.NewNode()
	p.visit(content, fields)
	out.Merge(fields)
	return out
}

// publicationNumbers replaces info.publicationNumber.values with the span
// texts following the first publicationNumber property, up to the next
// label. The repeat aggregation misses numbers rendered without markup.
func (p *pass) publicationNumbers(article *goquery.Selection, data *patentdoc.Node) {
	start := article.Find("[itemprop=publicationNumber]").First()
	if start.Length() == 0 {
		p.missing(article, "could not find publication numbers")
		return
	}

	values := []any{}
	for sib := start.Next(); sib.Length() > 0 && !isLabel(sib); sib = sib.Next() {
		if goquery.NodeName(sib) != "span" {
			continue
		}
		if text := strippedText(sib); text != "" {
			values = append(values, text)
		}
	}

	target := data.Node("info").Node("publicationNumber")
	if target == nil {
		p.missing(start, "no info.publicationNumber group to hold publication numbers")
		return
	}
	target.Set("values", values)
}
