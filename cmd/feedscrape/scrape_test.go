package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/feedscrape"
	main "github.com/fwojciec/feedscrape/cmd/feedscrape"
	"github.com/fwojciec/feedscrape/mock"
	"github.com/fwojciec/feedscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	acmeURL   = "https://www.linkedin.com/company/acme/posts/"
	globexURL = "https://www.linkedin.com/company/globex/posts/"
)

// writeTargets writes a targets file and returns its path.
func writeTargets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linkedin_urls.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testScraper returns a scraper whose pages hold the given post texts.
func testScraper(posts map[string][]string, failing ...string) *scrape.Scraper {
	return &scrape.Scraper{
		Loader: &mock.DocumentLoader{
			LoadFn: func(_ context.Context, url string) (feedscrape.RenderedDocument, error) {
				for _, f := range failing {
					if f == url {
						return nil, feedscrape.Errorf(feedscrape.ENOTFOUND, "no saved session cookies, run the login command first")
					}
				}
				return &mock.RenderedDocument{
					URLFn:   func() string { return url },
					CloseFn: func() error { return nil },
				}, nil
			},
		},
		Extractor: &mock.PostExtractor{
			ExtractFn: func(_ feedscrape.Document, opts feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
				res := &feedscrape.ExtractResult{}
				for i, text := range posts[opts.PageURL] {
					if i == opts.MaxPosts {
						break
					}
					res.Posts = append(res.Posts, &feedscrape.Post{Position: i + 1, Text: text, URL: opts.PageURL})
				}
				return res, nil
			},
		},
		RetryDelays: []time.Duration{},
	}
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("scrapes targets and writes report", func(t *testing.T) {
		t.Parallel()

		targets := writeTargets(t, `[["Acme", "`+acmeURL+`"], ["Globex", "`+globexURL+`"]]`)
		output := filepath.Join(t.TempDir(), "report.txt")

		var stored []*feedscrape.Post
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Posts: &mock.PostService{
				CreatePostFn: func(_ context.Context, p *feedscrape.Post) error {
					stored = append(stored, p)
					return nil
				},
			},
			Scraper: testScraper(map[string][]string{
				acmeURL: {"Acme is hiring engineers across teams", "Acme opens a new office in Lisbon"},
			}),
		}

		cmd := &main.ScrapeCmd{Targets: targets, Output: output, MaxPosts: 10, Concurrency: 1}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 2 feeds to scrape")
		assert.Contains(t, stdout.String(), "[1/2] Acme: 2 posts")
		assert.Contains(t, stdout.String(), "[2/2] Globex: no posts found")
		assert.Contains(t, stdout.String(), "Saved 2 posts from 2 feeds to "+output)
		assert.Len(t, stored, 2)

		report, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(report), "TARGET: ACME")
		assert.Contains(t, string(report), "│ Acme opens a new office in Lisbon")
		assert.Contains(t, string(report), "No posts found.")
	})

	t.Run("applies flags to the scraper", func(t *testing.T) {
		t.Parallel()

		targets := writeTargets(t, `[["Acme", "`+acmeURL+`"]]`)
		s := testScraper(map[string][]string{
			acmeURL: {"First post with enough text", "Second post with enough text", "Third post with enough text"},
		})
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Scraper: s,
		}

		cmd := &main.ScrapeCmd{
			Targets:       targets,
			Output:        filepath.Join(t.TempDir(), "report.txt"),
			MaxPosts:      2,
			MaxAgeDays:    7,
			EnforceMaxAge: true,
			Concurrency:   3,
			NoHistory:     true,
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, s.MaxPosts)
		assert.Equal(t, 7, s.MaxAgeDays)
		assert.True(t, s.EnforceMaxAge)
		assert.Equal(t, 3, s.Concurrency)
		assert.Nil(t, s.Posts)
	})

	t.Run("reports failed targets and keeps going", func(t *testing.T) {
		t.Parallel()

		targets := writeTargets(t, `[["Acme", "`+acmeURL+`"], ["Globex", "`+globexURL+`"]]`)
		output := filepath.Join(t.TempDir(), "report.txt")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Scraper: testScraper(map[string][]string{
				globexURL: {"Globex launches a new rocket today"},
			}, acmeURL),
		}

		cmd := &main.ScrapeCmd{Targets: targets, Output: output, MaxPosts: 10, NoHistory: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Acme: failed")
		assert.Contains(t, stdout.String(), "(1 failed)")

		report, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(report), "ERROR: scraping Acme")
	})

	t.Run("hides posts stored by previous scrapes with --new-only", func(t *testing.T) {
		t.Parallel()

		targets := writeTargets(t, `[["Acme", "`+acmeURL+`"]]`)
		output := filepath.Join(t.TempDir(), "report.txt")
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Posts: &mock.PostService{
				FindFingerprintsFn: func(_ context.Context, target string) ([]string, error) {
					assert.Empty(t, target)
					return []string{feedscrape.Fingerprint("Acme is hiring engineers across teams")}, nil
				},
			},
			Scraper: testScraper(map[string][]string{
				acmeURL: {"Acme is hiring engineers across teams", "Acme opens a new office in Lisbon"},
			}),
		}

		cmd := &main.ScrapeCmd{Targets: targets, Output: output, MaxPosts: 10, NewOnly: true, NoHistory: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		report, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.NotContains(t, string(report), "Acme is hiring engineers")
		assert.Contains(t, string(report), "Acme opens a new office in Lisbon")
	})

	t.Run("returns error for missing targets file", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Scraper: testScraper(nil),
		}

		cmd := &main.ScrapeCmd{Targets: filepath.Join(t.TempDir(), "linkedin_urls.json"), MaxPosts: 10}
		err := cmd.Run(deps)

		assert.Equal(t, feedscrape.ENOTFOUND, feedscrape.ErrorCode(err))
		assert.Contains(t, stderr.String(), `[["Company Name", "URL"], ...]`)
	})

	t.Run("returns error when history cannot be written", func(t *testing.T) {
		t.Parallel()

		targets := writeTargets(t, `[["Acme", "`+acmeURL+`"]]`)
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Posts: &mock.PostService{
				CreatePostFn: func(_ context.Context, _ *feedscrape.Post) error {
					return errors.New("database is locked")
				},
			},
			Scraper: testScraper(map[string][]string{acmeURL: {"Acme is hiring engineers across teams"}}),
		}

		cmd := &main.ScrapeCmd{Targets: targets, Output: filepath.Join(t.TempDir(), "report.txt"), MaxPosts: 10}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "database is locked")
	})
}
