// Package scrape fetches the language variants of a patent page and parses
// each one independently.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/patentdoc"
	"golang.org/x/sync/errgroup"
)

// Ensure Scraper implements patentdoc.Scraper at compile time.
var _ patentdoc.Scraper = (*Scraper)(nil)

// DefaultConcurrency is the number of translations fetched at once.
const DefaultConcurrency = 2

// Scraper fetches a patent in its original language and, when
// Translations is set, in every language the original page advertises.
type Scraper struct {
	Fetcher      patentdoc.Fetcher
	Parser       patentdoc.Parser
	RateLimiter  *RateLimiter
	Translations bool
	Concurrency  int
	RetryDelays  []time.Duration

	// Log, if set, receives retry messages.
	Log LogFunc
}

// Scrape returns the original variant first, followed by translations in
// the order the original page lists them. Any failed variant fails the
// whole call.
func (s *Scraper) Scrape(ctx context.Context, target patentdoc.Target) ([]*patentdoc.Variant, error) {
	original, err := s.variant(ctx, target.URL, "")
	if err != nil {
		return nil, err
	}
	original.Language = patentdoc.OriginalLanguage(original.Data)

	variants := []*patentdoc.Variant{original}
	// Translation URLs can only be formed from a patent ID.
	if !s.Translations || target.ID == "" {
		return variants, nil
	}

	languages := patentdoc.OtherLanguages(original.Data)
	if len(languages) == 0 {
		return variants, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	translations := make([]*patentdoc.Variant, len(languages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, language := range languages {
		g.Go(func() error {
			v, err := s.variant(gctx, patentdoc.PatentURL(target.ID, language), language)
			if err != nil {
				return fmt.Errorf("%s translation: %w", language, err)
			}
			translations[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(variants, translations...), nil
}

// variant fetches and parses a single page.
func (s *Scraper) variant(ctx context.Context, rawURL, language string) (*patentdoc.Variant, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, s.Log, delays)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	data, err := s.Parser.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	return &patentdoc.Variant{
		Language: language,
		URL:      rawURL,
		Data:     data,
		HTML:     html,
		HTMLHash: ComputeHash(html),
	}, nil
}

// ComputeHash returns the hex xxhash of content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
