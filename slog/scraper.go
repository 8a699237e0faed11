package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/patentdoc"
)

// Ensure LoggingScraper implements patentdoc.Scraper.
var _ patentdoc.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with debug logging.
type LoggingScraper struct {
	next   patentdoc.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next patentdoc.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the languages found.
func (s *LoggingScraper) Scrape(ctx context.Context, target patentdoc.Target) (variants []*patentdoc.Variant, err error) {
	defer func(begin time.Time) {
		languages := make([]string, 0, len(variants))
		for _, v := range variants {
			languages = append(languages, v.Language)
		}
		s.logger.Info("scrape",
			"id", target.ID,
			"url", target.URL,
			"languages", languages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, target)
}
