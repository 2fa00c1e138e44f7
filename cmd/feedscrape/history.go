package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/feedscrape"
)

// previewLength bounds the text shown for each post.
const previewLength = 100

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := feedscrape.PostFilter{Limit: c.Limit}
	if c.Target != "" {
		filter.Target = &c.Target
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedscrape.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts stored yet. Run 'feedscrape scrape' first.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(deps.Stdout, "%s  #%d  %s\n", p.ScrapedAt.Local().Format("2006-01-02 15:04"), p.Position, p.Target)
		if !p.PostedAt.IsZero() {
			fmt.Fprintf(deps.Stdout, "  posted ~%s\n", p.PostedAt.Format("2006-01-02"))
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", preview(p.Text))
		if p.URL != p.Target {
			fmt.Fprintf(deps.Stdout, "  %s\n", p.URL)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}

// preview returns the first line of text, shortened to previewLength runes.
func preview(text string) string {
	line, _, more := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	if more {
		return line + " ..."
	}
	return line
}
