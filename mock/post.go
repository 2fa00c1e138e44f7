package mock

import (
	"context"

	"github.com/fwojciec/feedscrape"
)

var _ feedscrape.PostService = (*PostService)(nil)

// PostService is a mock implementation of feedscrape.PostService.
type PostService struct {
	CreatePostFn       func(ctx context.Context, post *feedscrape.Post) error
	FindPostsFn        func(ctx context.Context, filter feedscrape.PostFilter) ([]*feedscrape.Post, error)
	FindFingerprintsFn func(ctx context.Context, target string) ([]string, error)
}

func (s *PostService) CreatePost(ctx context.Context, post *feedscrape.Post) error {
	return s.CreatePostFn(ctx, post)
}

func (s *PostService) FindPosts(ctx context.Context, filter feedscrape.PostFilter) ([]*feedscrape.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) FindFingerprints(ctx context.Context, target string) ([]string, error) {
	return s.FindFingerprintsFn(ctx, target)
}

var _ feedscrape.CookieStore = (*CookieStore)(nil)

// CookieStore is a mock implementation of feedscrape.CookieStore.
type CookieStore struct {
	LoadCookiesFn func(ctx context.Context) ([]*feedscrape.Cookie, error)
	SaveCookiesFn func(ctx context.Context, cookies []*feedscrape.Cookie) error
}

func (s *CookieStore) LoadCookies(ctx context.Context) ([]*feedscrape.Cookie, error) {
	return s.LoadCookiesFn(ctx)
}

func (s *CookieStore) SaveCookies(ctx context.Context, cookies []*feedscrape.Cookie) error {
	return s.SaveCookiesFn(ctx, cookies)
}

var _ feedscrape.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of feedscrape.SeenFilter.
type SeenFilter struct {
	AddFn  func(fingerprint string)
	TestFn func(fingerprint string) bool
}

func (f *SeenFilter) Add(fingerprint string) {
	f.AddFn(fingerprint)
}

func (f *SeenFilter) Test(fingerprint string) bool {
	return f.TestFn(fingerprint)
}
