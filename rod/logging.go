package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedscrape"
)

// Ensure LoggingLoader implements feedscrape.DocumentLoader.
var _ feedscrape.DocumentLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a DocumentLoader with logging.
type LoggingLoader struct {
	next   feedscrape.DocumentLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next feedscrape.DocumentLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load logs the URL being loaded and delegates to the wrapped loader.
func (l *LoggingLoader) Load(ctx context.Context, url string) (doc feedscrape.RenderedDocument, err error) {
	defer func(begin time.Time) {
		l.logger.Info("load",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, url)
}

// Close delegates to the wrapped loader.
func (l *LoggingLoader) Close() error {
	return l.next.Close()
}
