package patentdoc

import (
	"context"
	"strings"
)

// BaseURL is the patent page root.
const BaseURL = "https://patents.google.com/patent/"

// UnknownLanguage marks a variant whose language could not be determined.
const UnknownLanguage = "<unknown>"

// PatentURL returns the page URL for a patent ID. An empty language selects
// the patent's original language.
func PatentURL(id, language string) string {
	return BaseURL + id + "/" + language
}

// ParsePatentURL extracts the patent ID and language from a URL built by
// PatentURL. The language is empty for the original-language page. It
// reports false for any other URL.
func ParsePatentURL(rawURL string) (id, language string, ok bool) {
	rest, found := strings.CutPrefix(rawURL, BaseURL)
	if !found {
		return "", "", false
	}
	id, language, _ = strings.Cut(rest, "/")
	if id == "" || strings.Contains(language, "/") {
		return "", "", false
	}
	return id, language, true
}

// Target identifies what to scrape: either a patent ID or a literal URL.
type Target struct {
	ID  string
	URL string
}

// ResolveTarget interprets user input. Input containing a slash is used
// as a URL verbatim (e.g. a local file:// page), anything else is a
// patent ID.
func ResolveTarget(idOrURL string) (Target, error) {
	s := strings.TrimSpace(idOrURL)
	if s == "" {
		return Target{}, Errorf(EINVALID, "patent ID or URL required")
	}
	if strings.Contains(s, "/") {
		return Target{URL: s}, nil
	}
	return Target{ID: s, URL: PatentURL(s, "")}, nil
}

// Variant is one language version of a patent page.
type Variant struct {
	Language string `json:"language" yaml:"language"`
	URL      string `json:"url" yaml:"url"`
	Data     *Node  `json:"data" yaml:"data"`
	HTML     string `json:"html,omitempty" yaml:"html,omitempty"`
	HTMLHash string `json:"htmlHash" yaml:"htmlHash"`
}

// Scraper produces every available language variant of a patent.
type Scraper interface {
	// Scrape fetches and parses the target's original page and, for
	// patent IDs, each translation it advertises.
	Scrape(ctx context.Context, target Target) ([]*Variant, error)
}

// OriginalLanguage returns the lower-cased language of the document's
// abstract, or UnknownLanguage when absent.
func OriginalLanguage(doc *Node) string {
	v, ok := doc.Node("abstract").Get("lang")
	if !ok {
		return UnknownLanguage
	}
	lang, ok := v.(string)
	if !ok || lang == "" {
		return UnknownLanguage
	}
	return strings.ToLower(lang)
}

// OtherLanguages returns the language codes of the translations a
// document advertises, in page order.
func OtherLanguages(doc *Node) []string {
	var codes []string
	for _, item := range doc.Node("otherLanguages").List("otherLanguages") {
		other, ok := item.(*Node)
		if !ok {
			continue
		}
		if code, ok := other.Get("code"); ok {
			if s, ok := code.(string); ok && s != "" {
				codes = append(codes, s)
			}
		}
	}
	return codes
}
