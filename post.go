package feedscrape

import (
	"context"
	"time"
)

// Post represents a single post extracted from a feed.
type Post struct {
	ID          string    `json:"id,omitempty"`
	Target      string    `json:"target,omitempty"`
	Position    int       `json:"position"`
	Text        string    `json:"text"`
	URL         string    `json:"url"`
	Identity    string    `json:"identity,omitempty"`
	PostedAt    time.Time `json:"postedAt,omitzero"`
	ContentHash string    `json:"contentHash,omitempty"`
	ScrapedAt   time.Time `json:"scrapedAt,omitzero"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Position < 1 {
		return Errorf(EINVALID, "post position must be at least 1")
	}
	if p.Text == "" {
		return Errorf(EINVALID, "post text required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "post URL required")
	}
	return nil
}

// FilterSince returns the posts published at or after the cutoff.
// Posts without a known publication time are kept. Positions of the
// returned posts are renumbered so they stay dense. The input is not modified.
func FilterSince(posts []*Post, cutoff time.Time) []*Post {
	if cutoff.IsZero() {
		return posts
	}

	kept := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if !p.PostedAt.IsZero() && p.PostedAt.Before(cutoff) {
			continue
		}
		cp := *p
		cp.Position = len(kept) + 1
		kept = append(kept, &cp)
	}
	return kept
}

// PostService represents a service for managing scraped post history.
type PostService interface {
	// CreatePost stores a post.
	CreatePost(ctx context.Context, post *Post) error

	// FindPosts retrieves posts matching the filter, newest first.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// FindFingerprints returns the content fingerprints of all stored posts
	// for a target, or for every target when target is empty.
	FindFingerprints(ctx context.Context, target string) ([]string, error)
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	Target *string    `json:"target"`
	Since  *time.Time `json:"since"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SeenFilter remembers content fingerprints across runs.
// False positives are allowed; false negatives are not.
type SeenFilter interface {
	Add(fingerprint string)
	Test(fingerprint string) bool
}
