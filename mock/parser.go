package mock

import "github.com/fwojciec/patentdoc"

var _ patentdoc.Parser = (*Parser)(nil)

// Parser is a mock implementation of patentdoc.Parser.
type Parser struct {
	ParseFn func(html string) (*patentdoc.Node, error)
}

func (p *Parser) Parse(html string) (*patentdoc.Node, error) {
	return p.ParseFn(html)
}
