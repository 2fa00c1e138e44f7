package feedscrape

import "time"

// ExtractOptions configures a single extraction run.
type ExtractOptions struct {
	// PageURL is the address of the feed. Posts without a resolvable
	// permalink use it as their URL.
	PageURL string

	// MaxPosts bounds the number of returned posts. Must be at least 1.
	MaxPosts int

	// MaxAgeDays, when positive, sets ExtractResult.Cutoff.
	// The cutoff is advisory; see FilterSince.
	MaxAgeDays int

	// Debug requests a dump of the raw document markup.
	Debug bool
}

// Validate returns an error if the options contain invalid fields.
func (o ExtractOptions) Validate() error {
	if o.PageURL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if o.MaxPosts < 1 {
		return Errorf(EINVALID, "max posts must be at least 1")
	}
	if o.MaxAgeDays < 0 {
		return Errorf(EINVALID, "max age days must not be negative")
	}
	return nil
}

// SkipReason explains why a post container was not emitted.
type SkipReason string

// Reasons a container can be skipped.
const (
	SkipDuplicateIdentity SkipReason = "duplicate_identity"
	SkipRepost            SkipReason = "repost"
	SkipInsufficientText  SkipReason = "insufficient_text"
	SkipDuplicateContent  SkipReason = "duplicate_content"
	SkipContainerFault    SkipReason = "container_fault"
)

// Skip records a container that was rejected during extraction.
type Skip struct {
	// Index is the zero-based position of the container among all matches.
	Index    int
	Identity string
	Reason   SkipReason

	// Err is set for SkipContainerFault.
	Err error
}

// ExtractResult holds the outcome of one extraction run.
type ExtractResult struct {
	// Posts are the accepted posts in feed order, numbered from 1.
	Posts []*Post

	// Skipped lists rejected containers in the order they were seen.
	Skipped []Skip

	// Strategy is the container selector that matched, or empty if none did.
	Strategy string

	// Containers is the number of candidate containers found.
	Containers int

	// Cutoff is the oldest acceptable publication time derived from
	// ExtractOptions.MaxAgeDays. Zero when no age limit was requested.
	Cutoff time.Time

	// DumpErr is set when a requested debug dump failed.
	DumpErr error
}

// PostExtractor turns a rendered feed document into posts.
type PostExtractor interface {
	// Extract returns the posts found in the document.
	// Unrecognized or broken markup yields an empty result, not an error.
	// Returns EINVALID if the options are invalid.
	Extract(doc Document, opts ExtractOptions) (*ExtractResult, error)
}
