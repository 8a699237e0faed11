package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/patentdoc"
)

// Ensure LoggingParser implements patentdoc.Parser.
var _ patentdoc.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   patentdoc.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next patentdoc.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the size of the input and
// the number of top-level keys produced.
func (p *LoggingParser) Parse(html string) (doc *patentdoc.Node, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(html),
			"keys", doc.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html)
}

// DiagnosticLogger returns a DiagnosticFunc that logs each diagnostic at
// warn level.
func DiagnosticLogger(logger *slog.Logger) patentdoc.DiagnosticFunc {
	return func(d patentdoc.Diagnostic) {
		logger.Warn(d.Message,
			"kind", string(d.Kind),
			"tag", d.Tag,
		)
	}
}
