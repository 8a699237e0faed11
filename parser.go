package patentdoc

// Parser converts the HTML of a single patent page into a document.
type Parser interface {
	// Parse walks the page's microdata and returns the resulting document.
	// Returns ESTRUCTURE if the page lacks the expected root structure.
	// Per-field irregularities never fail the call.
	Parse(html string) (*Node, error)
}
