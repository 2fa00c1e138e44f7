package scrape

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/feedscrape"
)

// LoadFunc is the signature for a page load.
type LoadFunc func(ctx context.Context, url string) (feedscrape.RenderedDocument, error)

// RetryFunc is called before each retry with the attempt about to be made
// and the error of the previous one.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for load retries: 5s, 15s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{5 * time.Second, 15 * time.Second}
}

// LoadWithRetry loads url, retrying after each delay in delays.
// Invalid requests and missing sessions are not retried.
func LoadWithRetry(ctx context.Context, url string, load LoadFunc, onRetry RetryFunc, delays []time.Duration) (feedscrape.RenderedDocument, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := load(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

// retryable reports whether a load failure may be transient. Navigation
// timeouts are retried; cancellation of the caller's context is checked
// separately.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch feedscrape.ErrorCode(err) {
	case feedscrape.EINVALID, feedscrape.ENOTFOUND:
		return false
	}
	return true
}
