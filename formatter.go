package feedscrape

import (
	"fmt"
	"strings"
	"time"
)

// Report is the outcome of one scrape over a list of targets.
type Report struct {
	GeneratedAt time.Time
	Results     []*TargetResult
}

const (
	reportWidth     = 80
	reportTimestamp = "2006-01-02 15:04:05"
)

// FormatReport renders a report as plain text.
// Each target gets a header block followed by its posts in feed order.
// Post URLs equal to the target URL are omitted.
func FormatReport(r *Report) string {
	rule := strings.Repeat("=", reportWidth)
	var lines []string

	lines = append(lines,
		rule,
		"FEED SCRAPING RESULTS",
		"Generated: "+r.GeneratedAt.Format(reportTimestamp),
		fmt.Sprintf("Total Targets: %d", len(r.Results)),
		rule,
		"",
	)

	for _, res := range r.Results {
		lines = append(lines, formatTargetResult(res)...)
	}

	lines = append(lines, "", rule, "END OF REPORT", rule)
	return strings.Join(lines, "\n")
}

func formatTargetResult(res *TargetResult) []string {
	bar := strings.Repeat("█", reportWidth)
	lines := []string{
		"",
		bar,
		"TARGET: " + strings.ToUpper(res.Target.Name),
		bar,
		"URL: " + res.Target.URL,
		"Scraped: " + res.ScrapedAt.Format(reportTimestamp),
		strings.Repeat("─", reportWidth),
		"",
	}

	if res.Err != nil {
		return append(lines, fmt.Sprintf("ERROR: scraping %s: %v", res.Target.Name, res.Err), "")
	}

	if len(res.Posts) == 0 {
		return append(lines, "No posts found.", "")
	}

	lines = append(lines, fmt.Sprintf("Total Posts Found: %d", len(res.Posts)), "")
	for i, p := range res.Posts {
		lines = append(lines, fmt.Sprintf("┌─ POST #%d %s", i+1, strings.Repeat("─", reportWidth-14)))
		lines = append(lines, fmt.Sprintf("│ Position in feed: %d", p.Position))
		if p.URL != "" && p.URL != res.Target.URL {
			lines = append(lines, "│ Post URL: "+p.URL)
		}
		if !p.PostedAt.IsZero() {
			lines = append(lines, "│ Posted: ~"+p.PostedAt.Format("2006-01-02"))
		}
		lines = append(lines, "│", "│ Content:")
		for _, line := range strings.Split(p.Text, "\n") {
			lines = append(lines, "│ "+line)
		}
		lines = append(lines, "└"+strings.Repeat("─", reportWidth-1), "")
	}
	return lines
}
