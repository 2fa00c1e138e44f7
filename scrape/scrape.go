// Package scrape coordinates scraping of many feeds: it loads each target
// in the browser, extracts its posts, and records them in the history.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/feedscrape"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates the scraping of feed targets.
type Scraper struct {
	Loader      feedscrape.DocumentLoader
	Extractor   feedscrape.PostExtractor
	RateLimiter feedscrape.DomainLimiter

	// Posts, if set, receives every post that is reported.
	Posts feedscrape.PostService

	// Seen, if set together with NewOnly, hides posts whose fingerprint
	// was recorded before. Reported posts are added to it.
	Seen    feedscrape.SeenFilter
	NewOnly bool

	MaxPosts   int
	MaxAgeDays int

	// EnforceMaxAge drops posts older than the MaxAgeDays cutoff.
	EnforceMaxAge bool
	Debug         bool

	Concurrency int
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	seenMu sync.Mutex
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Target    feedscrape.Target
	Posts     int
	Attempt   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressRetrying
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scrape scrapes every target and returns one result per target, in the
// order of targets. A target that cannot be loaded or extracted is
// reported in its result's Err and does not stop the others.
//
// The returned error is set only when the context is canceled or the
// history cannot be written.
func (s *Scraper) Scrape(ctx context.Context, targets []feedscrape.Target, progress ProgressFunc) ([]*feedscrape.TargetResult, error) {
	if s.MaxPosts < 1 {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "max posts must be at least 1")
	}
	if s.MaxAgeDays < 0 {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "max age days must not be negative")
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	// Callbacks are serialized so progress consumers need no locking.
	var mu sync.Mutex
	var completed int
	total := len(targets)
	emit := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if event.Type == ProgressCompleted || event.Type == ProgressFailed {
			completed++
		}
		event.Completed = completed
		event.Total = total
		progress(event)
	}

	emit(ProgressEvent{Type: ProgressStarted})

	results := make([]*feedscrape.TargetResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, target := range targets {
		g.Go(func() error {
			result, err := s.scrapeTarget(gctx, target, emit)
			if err != nil {
				return err
			}
			results[i] = result

			if result.Err != nil {
				emit(ProgressEvent{Type: ProgressFailed, Target: target, Error: result.Err})
			} else {
				emit(ProgressEvent{Type: ProgressCompleted, Target: target, Posts: len(result.Posts)})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit(ProgressEvent{Type: ProgressFinished})

	return results, nil
}

// scrapeTarget loads and extracts a single target. Load and extraction
// failures are recorded on the result; only history and context errors
// are returned.
func (s *Scraper) scrapeTarget(ctx context.Context, target feedscrape.Target, emit ProgressFunc) (*feedscrape.TargetResult, error) {
	result := &feedscrape.TargetResult{Target: target, ScrapedAt: s.now()}

	if err := target.Validate(); err != nil {
		result.Err = err
		return result, nil
	}

	posts, skipped, err := s.extract(ctx, target, emit)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		result.Err = err
		return result, nil
	}

	for _, p := range posts {
		p.Target = target.URL
		p.ScrapedAt = result.ScrapedAt
	}
	posts = s.filterSeen(posts)

	if err := s.store(ctx, posts); err != nil {
		return nil, err
	}

	result.Posts = posts
	result.Skipped = skipped
	return result, nil
}

func (s *Scraper) extract(ctx context.Context, target feedscrape.Target, emit ProgressFunc) ([]*feedscrape.Post, []feedscrape.Skip, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, host(target.URL)); err != nil {
			return nil, nil, err
		}
	}

	onRetry := func(_ string, attempt int, err error) {
		emit(ProgressEvent{Type: ProgressRetrying, Target: target, Attempt: attempt, Error: err})
	}
	doc, err := LoadWithRetry(ctx, target.URL, s.Loader.Load, onRetry, s.retryDelays())
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()

	pageURL := doc.URL()
	if pageURL == "" {
		pageURL = target.URL
	}

	res, err := s.Extractor.Extract(doc, feedscrape.ExtractOptions{
		PageURL:    pageURL,
		MaxPosts:   s.MaxPosts,
		MaxAgeDays: s.MaxAgeDays,
		Debug:      s.Debug,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("extracting posts: %w", err)
	}

	posts := res.Posts
	if s.EnforceMaxAge {
		posts = feedscrape.FilterSince(posts, res.Cutoff)
	}
	return posts, res.Skipped, nil
}

// filterSeen drops posts recorded in a previous run when NewOnly is set,
// renumbering the rest, and remembers every reported post.
func (s *Scraper) filterSeen(posts []*feedscrape.Post) []*feedscrape.Post {
	if s.Seen == nil {
		return posts
	}

	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	kept := make([]*feedscrape.Post, 0, len(posts))
	for _, p := range posts {
		fp := feedscrape.Fingerprint(p.Text)
		if s.NewOnly && s.Seen.Test(fp) {
			continue
		}
		p.Position = len(kept) + 1
		kept = append(kept, p)
	}
	for _, p := range kept {
		s.Seen.Add(feedscrape.Fingerprint(p.Text))
	}
	return kept
}

// store records posts in the history. Posts already stored for the
// target are left as they are.
func (s *Scraper) store(ctx context.Context, posts []*feedscrape.Post) error {
	if s.Posts == nil {
		return nil
	}
	for _, p := range posts {
		err := s.Posts.CreatePost(ctx, p)
		if feedscrape.ErrorCode(err) == feedscrape.ECONFLICT {
			continue
		} else if err != nil {
			return fmt.Errorf("saving post %d of %s: %w", p.Position, p.Target, err)
		}
	}
	return nil
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays != nil {
		return s.RetryDelays
	}
	return DefaultRetryDelays()
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// host returns the host of rawURL, or rawURL itself if it cannot be parsed.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
