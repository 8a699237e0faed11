package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/patentdoc"
)

// isLabel reports whether the tag starts a new named group of the
// siblings that follow it.
func isLabel(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "dt", "h2":
		return true
	}
	return false
}

// segment collects the siblings following a label, up to the next label,
// into a nested node stored under the label's key. A repeated key replaces
// the earlier group.
func (p *pass) segment(label *goquery.Selection, current *patentdoc.Node) {
	key := p.labelKey(label)
	child := patentdoc.NewNode()
	for sib := label.Next(); sib.Length() > 0 && !isLabel(sib); sib = sib.Next() {
		p.visit(sib, child)
	}
	current.Set(key, child)
}

func (p *pass) labelKey(label *goquery.Selection) string {
	text, ok := ownString(label.Get(0))
	if !ok {
		p.missing(label, "label tag has no text")
		return ""
	}
	key := LabelKey(text)
	if key == "" {
		p.missing(label, "label %q yields an empty key", strings.TrimSpace(text))
	}
	return key
}

// LabelKey converts label text into a camelCase key. Words are taken up
// to the first one that does not start with a letter or digit; trailing
// punctuation is dropped from each word.
//
//	"Prior art date:" -> "priorArtDate"
//	"Cited By (12)"   -> "citedBy"
func LabelKey(text string) string {
	var b strings.Builder
	for i, word := range strings.Fields(text) {
		r, _ := utf8.DecodeRuneInString(word)
		if !isAlnum(r) {
			break
		}
		word = strings.TrimRightFunc(word, func(r rune) bool { return !isAlnum(r) })
		if i == 0 {
			b.WriteString(strings.ToLower(word))
		} else {
			b.WriteString(capitalize(word))
		}
	}
	return b.String()
}

// hyphenatedToCamel converts attribute names such as "mxw-id" to "mxwId".
func hyphenatedToCamel(name string) string {
	parts := strings.Split(name, "-")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
