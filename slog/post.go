package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feedscrape"
)

// Ensure LoggingPostService implements feedscrape.PostService.
var _ feedscrape.PostService = (*LoggingPostService)(nil)

// LoggingPostService wraps a PostService with debug logging.
type LoggingPostService struct {
	next   feedscrape.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next feedscrape.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

// CreatePost delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) CreatePost(ctx context.Context, post *feedscrape.Post) (err error) {
	defer func(begin time.Time) {
		if feedscrape.ErrorCode(err) == feedscrape.ECONFLICT {
			s.logger.Debug("post already stored",
				"target", post.Target,
				"position", post.Position,
			)
			return
		}
		s.logger.Debug("create post",
			"target", post.Target,
			"position", post.Position,
			"id", post.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePost(ctx, post)
}

// FindPosts delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) FindPosts(ctx context.Context, filter feedscrape.PostFilter) (posts []*feedscrape.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find posts",
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}

// FindFingerprints delegates to the wrapped service and logs the operation.
func (s *LoggingPostService) FindFingerprints(ctx context.Context, target string) (fingerprints []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find fingerprints",
			"target", target,
			"count", len(fingerprints),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFingerprints(ctx, target)
}
