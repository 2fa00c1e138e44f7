package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/feedscrape"
)

// DefaultCookieFile is the cookie file used when none is configured.
const DefaultCookieFile = "linkedin_cookies.json"

// Ensure CookieStore implements feedscrape.CookieStore at compile time.
var _ feedscrape.CookieStore = (*CookieStore)(nil)

// CookieStore keeps cookies in a JSON file as an array of cookie objects.
type CookieStore struct {
	path string
}

// NewCookieStore creates a CookieStore backed by the file at path.
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// LoadCookies reads the cookie file.
// Returns ENOTFOUND if the file does not exist and EINVALID if it is not
// a JSON array of cookies.
func (s *CookieStore) LoadCookies(ctx context.Context) ([]*feedscrape.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, feedscrape.Errorf(feedscrape.ENOTFOUND, "cookie file %s not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("reading cookie file: %w", err)
	}

	var cookies []*feedscrape.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "cookie file %s is not valid JSON: %v", s.path, err)
	}
	return cookies, nil
}

// SaveCookies replaces the cookie file. The file is readable by the
// owner only since it holds session credentials.
func (s *CookieStore) SaveCookies(ctx context.Context, cookies []*feedscrape.Cookie) error {
	if cookies == nil {
		cookies = []*feedscrape.Cookie{}
	}
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cookies: %w", err)
	}
	if err := writeFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}
	return nil
}
