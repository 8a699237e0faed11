// Package slog provides log/slog decorators for patentdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/patentdoc"
)

// Ensure LoggingFetcher implements patentdoc.Fetcher.
var _ patentdoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every page fetch. Patent page
// URLs are logged with their patent ID and variant language.
type LoggingFetcher struct {
	next   patentdoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next patentdoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page it fetched.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if id, language, ok := patentdoc.ParsePatentURL(url); ok {
			if language == "" {
				language = "original"
			}
			attrs = append(attrs, "patent", id, "language", language)
		}
		attrs = append(attrs,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
