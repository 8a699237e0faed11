package mock

import (
	"context"

	"github.com/fwojciec/patentdoc"
)

var _ patentdoc.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of patentdoc.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, target patentdoc.Target) ([]*patentdoc.Variant, error)
}

func (s *Scraper) Scrape(ctx context.Context, target patentdoc.Target) ([]*patentdoc.Variant, error) {
	return s.ScrapeFn(ctx, target)
}
