package main

import (
	"fmt"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/bloom"
	"github.com/fwojciec/feedscrape/fs"
	"github.com/fwojciec/feedscrape/scrape"
)

// seenFalsePositiveRate is the rate at which --new-only may wrongly hide
// a post that was never seen.
const seenFalsePositiveRate = 0.001

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	targets, err := fs.LoadTargets(c.Targets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedscrape.ErrorMessage(err))
		return err
	}

	noun := "feeds"
	if len(targets) == 1 {
		noun = "feed"
	}
	fmt.Fprintf(deps.Stdout, "Found %d %s to scrape\n", len(targets), noun)

	s := deps.Scraper
	s.MaxPosts = c.MaxPosts
	s.MaxAgeDays = c.MaxAgeDays
	s.EnforceMaxAge = c.EnforceMaxAge
	s.Debug = c.Debug
	s.Concurrency = c.Concurrency
	s.NewOnly = c.NewOnly
	if !c.NoHistory {
		s.Posts = deps.Posts
	}

	if c.NewOnly {
		var fingerprints []string
		if deps.Posts != nil {
			fingerprints, err = deps.Posts.FindFingerprints(deps.Ctx, "")
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", feedscrape.ErrorMessage(err))
				return err
			}
		}
		s.Seen = bloom.NewFilterFrom(fingerprints, uint(len(targets)*max(c.MaxPosts, 1)), seenFalsePositiveRate)
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressRetrying:
			fmt.Fprintf(deps.Stderr, "  retry %s (attempt %d): %v\n", event.Target.Name, event.Attempt, event.Error)
		case scrape.ProgressCompleted:
			if event.Posts == 0 {
				fmt.Fprintf(deps.Stdout, "[%d/%d] %s: no posts found\n", event.Completed, event.Total, event.Target.Name)
			} else {
				fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d posts\n", event.Completed, event.Total, event.Target.Name, event.Posts)
			}
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: failed: %v\n", event.Completed, event.Total, event.Target.Name, event.Error)
		}
	}

	results, err := s.Scrape(deps.Ctx, targets, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	report := &feedscrape.Report{GeneratedAt: deps.now(), Results: results}
	if err := fs.WriteReport(c.Output, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: saving report: %v\n", err)
		return err
	}

	var posts, failed int
	for _, res := range results {
		posts += len(res.Posts)
		if res.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(deps.Stdout, "Saved %d posts from %d feeds to %s", posts, len(results)-failed, c.Output)
	if failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", failed)
	}
	fmt.Fprintln(deps.Stdout)

	return nil
}
