package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	acme   = "https://www.linkedin.com/company/acme/posts/"
	globex = "https://www.linkedin.com/company/globex/posts/"
)

func newPost(target string, position int, text string) *feedscrape.Post {
	return &feedscrape.Post{
		Target:   target,
		Position: position,
		Text:     text,
		URL:      target,
	}
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("creates post with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)

		post := newPost(acme, 1, "We are hiring engineers across all teams")
		err := svc.CreatePost(context.Background(), post)

		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Len(t, post.ContentHash, 16)
		assert.False(t, post.ScrapedAt.IsZero())
	})

	t.Run("keeps the given scrape time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)
		scrapedAt := time.Date(2026, 3, 10, 12, 30, 15, 999, time.UTC)

		post := newPost(acme, 1, "We are hiring engineers across all teams")
		post.ScrapedAt = scrapedAt
		require.NoError(t, svc.CreatePost(context.Background(), post))

		assert.Equal(t, scrapedAt.Truncate(time.Second), post.ScrapedAt)
	})

	t.Run("returns ECONFLICT for content already stored for the target", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreatePost(ctx, newPost(acme, 1, "We are hiring engineers across all teams")))
		err := svc.CreatePost(ctx, newPost(acme, 3, "WE ARE HIRING engineers across all teams"))

		assert.Equal(t, feedscrape.ECONFLICT, feedscrape.ErrorCode(err))
	})

	t.Run("stores the same content for different targets", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreatePost(ctx, newPost(acme, 1, "Happy holidays from all of us")))
		require.NoError(t, svc.CreatePost(ctx, newPost(globex, 1, "Happy holidays from all of us")))
	})

	t.Run("returns EINVALID for invalid post", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)

		err := svc.CreatePost(context.Background(), &feedscrape.Post{})

		assert.Equal(t, feedscrape.EINVALID, feedscrape.ErrorCode(err))
	})

	t.Run("returns EINVALID for post without target", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPostService(db)

		err := svc.CreatePost(context.Background(), newPost("", 1, "A post that belongs nowhere at all"))

		assert.Equal(t, feedscrape.EINVALID, feedscrape.ErrorCode(err))
	})
}

func TestPostService_FindPosts(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.PostService {
		t.Helper()
		svc := sqlite.NewPostService(setupTestDB(t))
		ctx := context.Background()
		older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

		for _, p := range []*feedscrape.Post{
			{Target: acme, Position: 1, Text: "Acme older post number one", URL: acme, ScrapedAt: older},
			{Target: acme, Position: 2, Text: "Acme newer post number two", URL: acme, ScrapedAt: newer},
			{Target: acme, Position: 1, Text: "Acme newer post number one", URL: acme, ScrapedAt: newer,
				PostedAt: time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC), Identity: "urn:li:activity:9"},
			{Target: globex, Position: 1, Text: "Globex post about rockets", URL: globex, ScrapedAt: newer},
		} {
			require.NoError(t, svc.CreatePost(ctx, p))
		}
		return svc
	}

	t.Run("returns newest scrape first in feed order", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		target := acme

		posts, err := svc.FindPosts(context.Background(), feedscrape.PostFilter{Target: &target})

		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "Acme newer post number one", posts[0].Text)
		assert.Equal(t, "Acme newer post number two", posts[1].Text)
		assert.Equal(t, "Acme older post number one", posts[2].Text)
	})

	t.Run("round trips optional fields", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		target := acme

		posts, err := svc.FindPosts(context.Background(), feedscrape.PostFilter{Target: &target, Limit: 1})

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "urn:li:activity:9", posts[0].Identity)
		assert.Equal(t, time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC), posts[0].PostedAt)
		assert.Equal(t, time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), posts[0].ScrapedAt)
		assert.NotEmpty(t, posts[0].ContentHash)
	})

	t.Run("filters by scrape time", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		since := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

		posts, err := svc.FindPosts(context.Background(), feedscrape.PostFilter{Since: &since})

		require.NoError(t, err)
		assert.Len(t, posts, 3)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)

		posts, err := svc.FindPosts(context.Background(), feedscrape.PostFilter{Limit: 2, Offset: 2})

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Globex post about rockets", posts[0].Text)
		assert.Equal(t, "Acme older post number one", posts[1].Text)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		target := "https://www.linkedin.com/company/initech/posts/"

		posts, err := svc.FindPosts(context.Background(), feedscrape.PostFilter{Target: &target})

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})
}

func TestPostService_FindFingerprints(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewPostService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreatePost(ctx, newPost(acme, 1, "Acme Announces A New Product Line")))
	require.NoError(t, svc.CreatePost(ctx, newPost(globex, 1, "Globex post about rockets")))

	t.Run("returns fingerprints for one target", func(t *testing.T) {
		fps, err := svc.FindFingerprints(ctx, acme)

		require.NoError(t, err)
		assert.Equal(t, []string{feedscrape.Fingerprint("Acme Announces A New Product Line")}, fps)
	})

	t.Run("returns fingerprints for every target", func(t *testing.T) {
		fps, err := svc.FindFingerprints(ctx, "")

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			feedscrape.Fingerprint("Acme Announces A New Product Line"),
			feedscrape.Fingerprint("Globex post about rockets"),
		}, fps)
	})
}
