package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/goquery"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	doc, err := goquery.NewDocument(string(data), c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedscrape.ErrorMessage(err))
		return err
	}

	res, err := deps.Extractor.Extract(doc, feedscrape.ExtractOptions{
		PageURL:    c.URL,
		MaxPosts:   c.MaxPosts,
		MaxAgeDays: c.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedscrape.ErrorMessage(err))
		return err
	}

	strategy := res.Strategy
	if strategy == "" {
		strategy = "none matched"
	}
	fmt.Fprintf(deps.Stdout, "Strategy: %s\n", strategy)
	fmt.Fprintf(deps.Stdout, "Containers: %d\n", res.Containers)
	fmt.Fprintf(deps.Stdout, "Posts: %d\n", len(res.Posts))
	if !res.Cutoff.IsZero() {
		fmt.Fprintf(deps.Stdout, "Cutoff: %s\n", res.Cutoff.Format("2006-01-02"))
	}
	fmt.Fprintf(deps.Stdout, "Skipped: %d\n", len(res.Skipped))
	for _, skip := range res.Skipped {
		line := fmt.Sprintf("  container %d: %s", skip.Index+1, skip.Reason)
		if skip.Identity != "" {
			line += " (" + skip.Identity + ")"
		}
		if skip.Err != nil {
			line += ": " + skip.Err.Error()
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	report := &feedscrape.Report{
		GeneratedAt: deps.now(),
		Results: []*feedscrape.TargetResult{{
			Target:    feedscrape.Target{Name: filepath.Base(c.File), URL: c.URL},
			Posts:     res.Posts,
			Skipped:   res.Skipped,
			ScrapedAt: deps.now(),
		}},
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, feedscrape.FormatReport(report))

	return nil
}
