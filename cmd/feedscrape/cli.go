package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/scrape"
)

// CaptureFunc opens a browser for the user to log in and returns the
// cookies it holds afterwards.
type CaptureFunc func(ctx context.Context) ([]*feedscrape.Cookie, error)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Posts     feedscrape.PostService
	Cookies   feedscrape.CookieStore
	Extractor feedscrape.PostExtractor
	Scraper   *scrape.Scraper
	Capture   CaptureFunc

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug details to stderr"`
	Browser string `env:"FEEDSCRAPE_BROWSER" help:"Chrome or Chromium executable (downloaded if unset and none is installed)"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape every feed in the targets file and write a report"`
	Parse   ParseCmd   `cmd:"" help:"Extract posts from a saved HTML page without a browser"`
	Login   LoginCmd   `cmd:"" help:"Log in through a browser window and save the session cookies"`
	History HistoryCmd `cmd:"" help:"List posts stored by previous scrapes"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Targets       string `short:"t" default:"linkedin_urls.json" help:"JSON file of [name, url] pairs, or YAML list of name/url entries"`
	Output        string `short:"o" default:"linkedin_output.txt" help:"Report file"`
	Cookies       string `default:"linkedin_cookies.json" env:"FEEDSCRAPE_COOKIES" help:"Session cookie file"`
	MaxPosts      int    `short:"n" default:"10" help:"Maximum posts per feed"`
	MaxAgeDays    int    `help:"Oldest post age in days to consider (0 for no limit)"`
	EnforceMaxAge bool   `help:"Drop posts older than --max-age-days instead of only reporting the cutoff"`
	Debug         bool   `help:"Save the page HTML to debug.html"`
	Concurrency   int    `short:"c" default:"1" help:"Feeds loaded at the same time"`
	NewOnly       bool   `help:"Only report posts not seen in previous scrapes"`
	NoHistory     bool   `help:"Do not store scraped posts"`
	Headed        bool   `help:"Show the browser window"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File       string `arg:"" type:"existingfile" help:"Saved HTML page"`
	URL        string `required:"" help:"Address the page was saved from"`
	MaxPosts   int    `short:"n" default:"10" help:"Maximum posts to extract"`
	MaxAgeDays int    `help:"Oldest post age in days to consider (0 for no limit)"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Cookies string `default:"linkedin_cookies.json" env:"FEEDSCRAPE_COOKIES" help:"Session cookie file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Target string `help:"Only show posts from this feed URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum posts to show"`
}
