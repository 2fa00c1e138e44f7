package feedscrape

import (
	"context"
	"net/url"
	"time"
)

// Target is a named feed to scrape, such as a company page.
type Target struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Validate returns an error if the target contains invalid fields.
func (t *Target) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "target name required")
	}
	if t.URL == "" {
		return Errorf(EINVALID, "target URL required")
	}
	u, err := url.Parse(t.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "target URL %q must be an absolute http(s) URL", t.URL)
	}
	return nil
}

// TargetResult holds the outcome of scraping one target.
type TargetResult struct {
	Target    Target
	Posts     []*Post
	Skipped   []Skip
	ScrapedAt time.Time

	// Err is set when the target could not be loaded.
	// An empty feed is not an error.
	Err error
}

// DomainLimiter provides per-host rate limiting of page loads.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a load from the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
