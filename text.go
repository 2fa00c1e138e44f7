package feedscrape

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MinPostLength is the number of characters a post's text must exceed.
// Shorter texts come from empty or media-only containers.
const MinPostLength = 20

// FingerprintLength is the number of leading characters used for content fingerprints.
const FingerprintLength = 100

var blankRunRe = regexp.MustCompile(`\n\s*\n\s*\n+`)

// CleanText collapses runs of two or more blank lines into a single blank
// line and trims surrounding whitespace. CleanText is idempotent.
func CleanText(raw string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(raw, "\n\n"))
}

// skipLinePatterns match feed chrome that surrounds the body of a post.
// Patterns are anchored at the start of the trimmed line.
var skipLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\s*(?:tuần|tháng|ngày|giờ|phút)`),
	regexp.MustCompile(`(?i)^\d+\s*(?:week|month|day|hour|minute|min|hr|d|h|m|w)`),
	regexp.MustCompile(`(?i)^(?:like|comment|share|send|follow|repost)`),
	regexp.MustCompile(`^\d[\d,.]*$`),
	regexp.MustCompile(`(?i)^hiển thị với`),
	regexp.MustCompile(`(?i)^kích hoạt để xem`),
}

// FilterLines removes UI chrome from a block of text: lines shorter than
// three characters, relative timestamps, action button labels, bare
// counters, and placeholder image captions. Surviving lines are returned
// unchanged and in their original order.
func FilterLines(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) < 3 {
			continue
		}
		if isChromeLine(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isChromeLine(line string) bool {
	for _, re := range skipLinePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Fingerprint returns the content fingerprint of cleaned post text:
// its first FingerprintLength characters, lowercased and trimmed.
// Text is normalized to NFC first so composed and decomposed accents
// produce the same fingerprint.
func Fingerprint(text string) string {
	return strings.TrimSpace(strings.ToLower(prefix(norm.NFC.String(text), FingerprintLength)))
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// HasMinLength reports whether text is long enough to be a post.
func HasMinLength(text string) bool {
	return utf8.RuneCountInString(text) > MinPostLength
}

// repostIndicators mark a container as a reshare of someone else's post.
var repostIndicators = []string{
	"reposted this",
	"đã đăng lại",
}

// repostWindow is the number of leading characters searched for a repost indicator.
const repostWindow = 200

// IsRepost reports whether the raw container text announces a repost
// within its first 200 characters.
func IsRepost(raw string) bool {
	head := prefix(strings.ToLower(norm.NFC.String(raw)), repostWindow)
	for _, indicator := range repostIndicators {
		if strings.Contains(head, indicator) {
			return true
		}
	}
	return false
}
