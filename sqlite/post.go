package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/feedscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ feedscrape.PostService = (*PostService)(nil)

// PostService implements feedscrape.PostService using SQLite.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// CreatePost stores a post and fills in its ID, content hash, and scrape
// time if unset. Timestamps are stored with second precision.
//
// Returns ECONFLICT if a post with the same content fingerprint is
// already stored for the target.
func (s *PostService) CreatePost(ctx context.Context, post *feedscrape.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	if post.Target == "" {
		return feedscrape.Errorf(feedscrape.EINVALID, "post target required")
	}

	if post.ScrapedAt.IsZero() {
		post.ScrapedAt = time.Now()
	}
	post.ScrapedAt = post.ScrapedAt.UTC().Truncate(time.Second)
	if !post.PostedAt.IsZero() {
		post.PostedAt = post.PostedAt.UTC().Truncate(time.Second)
	}
	post.ContentHash = hashContent(post.Text)
	id := uuid.New().String()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, target, position, text, url, identity, posted_at, content_hash, fingerprint, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (target, fingerprint) DO NOTHING
	`, id, post.Target, post.Position, post.Text, post.URL, post.Identity, formatTime(post.PostedAt),
		post.ContentHash, feedscrape.Fingerprint(post.Text), formatTime(post.ScrapedAt))
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return feedscrape.Errorf(feedscrape.ECONFLICT, "post already stored for %s", post.Target)
	}

	post.ID = id
	return nil
}

// FindPosts retrieves posts matching the filter, most recently scraped
// first and in feed order within a scrape.
func (s *PostService) FindPosts(ctx context.Context, filter feedscrape.PostFilter) ([]*feedscrape.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, target, position, text, url, identity, posted_at, content_hash, scraped_at FROM posts WHERE 1=1")

	if filter.Target != nil {
		query.WriteString(" AND target = ?")
		args = append(args, *filter.Target)
	}
	if filter.Since != nil {
		query.WriteString(" AND scraped_at >= ?")
		args = append(args, formatTime(filter.Since.UTC()))
	}

	query.WriteString(" ORDER BY scraped_at DESC, target ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*feedscrape.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// FindFingerprints returns the content fingerprints stored for target, or
// for every target when target is empty.
func (s *PostService) FindFingerprints(ctx context.Context, target string) ([]string, error) {
	query := "SELECT fingerprint FROM posts"
	var args []any
	if target != "" {
		query += " WHERE target = ?"
		args = append(args, target)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fingerprints []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		fingerprints = append(fingerprints, fp)
	}

	return fingerprints, rows.Err()
}

func scanPost(rows *sql.Rows) (*feedscrape.Post, error) {
	var post feedscrape.Post
	var postedAt, scrapedAt string

	if err := rows.Scan(&post.ID, &post.Target, &post.Position, &post.Text, &post.URL, &post.Identity,
		&postedAt, &post.ContentHash, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if post.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	if postedAt != "" {
		if post.PostedAt, err = parseRFC3339(postedAt, "posted_at"); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

// formatTime formats t as RFC3339, or returns empty string for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
