// Package slog provides logging decorators for the feedscrape services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/feedscrape"
)

// Ensure LoggingExtractor implements feedscrape.PostExtractor.
var _ feedscrape.PostExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PostExtractor with logging. Each rejected
// container is logged at debug level.
type LoggingExtractor struct {
	next   feedscrape.PostExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next feedscrape.PostExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(doc feedscrape.Document, opts feedscrape.ExtractOptions) (result *feedscrape.ExtractResult, err error) {
	defer func(begin time.Time) {
		if err != nil || result == nil {
			e.logger.Info("extract",
				"url", opts.PageURL,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}

		for _, skip := range result.Skipped {
			e.logger.Debug("skip container",
				"url", opts.PageURL,
				"index", skip.Index,
				"identity", skip.Identity,
				"reason", skip.Reason,
				"err", skip.Err,
			)
		}
		if result.DumpErr != nil {
			e.logger.Warn("debug dump failed", "url", opts.PageURL, "err", result.DumpErr)
		}

		e.logger.Info("extract",
			"url", opts.PageURL,
			"strategy", result.Strategy,
			"containers", result.Containers,
			"posts", len(result.Posts),
			"skipped", len(result.Skipped),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(doc, opts)
}
