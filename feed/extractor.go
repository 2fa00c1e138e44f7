package feed

import (
	"fmt"
	"time"

	"github.com/fwojciec/feedscrape"
)

// Compile-time interface verification.
var _ feedscrape.PostExtractor = (*Extractor)(nil)

// Extractor turns rendered feed documents into posts.
// The zero value uses the default selectors and origin.
//
// Extractor keeps no state between calls and is safe for concurrent
// use on different documents.
type Extractor struct {
	ContainerSelectors   []string
	DescriptionSelectors []string
	PermalinkSelectors   []string
	DateSelectors        []string

	// Origin absolutizes relative permalinks. Defaults to DefaultOrigin.
	Origin string

	// Dumper receives the document markup when ExtractOptions.Debug is set.
	Dumper feedscrape.DebugDumper

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Extract returns up to opts.MaxPosts posts found in doc, in document order.
// Containers are rejected when their identity or content fingerprint was
// already accepted, when they are reposts, or when their text is too short.
// Rejected containers are listed in ExtractResult.Skipped.
//
// Returns EINVALID if doc is nil or the options are invalid. Documents
// without recognizable posts yield an empty result.
func (x *Extractor) Extract(doc feedscrape.Document, opts feedscrape.ExtractOptions) (*feedscrape.ExtractResult, error) {
	if doc == nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "document required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	now := x.now()
	result := &feedscrape.ExtractResult{Posts: []*feedscrape.Post{}}
	if opts.MaxAgeDays > 0 {
		result.Cutoff = now.AddDate(0, 0, -opts.MaxAgeDays)
	}

	if opts.Debug && x.Dumper != nil {
		result.DumpErr = x.dump(doc)
	}

	containers, strategy := ResolveContainers(doc, orDefault(x.ContainerSelectors, DefaultContainerSelectors))
	result.Strategy = strategy
	result.Containers = len(containers)

	r := &run{
		extractor: x,
		opts:      opts,
		now:       now,
		tracker:   NewTracker(),
	}

	for i, el := range containers {
		if len(result.Posts) >= opts.MaxPosts {
			break
		}

		post, skip := r.process(i, el)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}

		post.Position = len(result.Posts) + 1
		result.Posts = append(result.Posts, post)
	}

	return result, nil
}

func (x *Extractor) now() time.Time {
	if x.Now != nil {
		return x.Now()
	}
	return time.Now()
}

func (x *Extractor) origin() string {
	if x.Origin != "" {
		return x.Origin
	}
	return DefaultOrigin
}

func (x *Extractor) dump(doc feedscrape.Document) error {
	html, err := doc.HTML()
	if err != nil {
		return fmt.Errorf("reading document HTML: %w", err)
	}
	if err := x.Dumper.DumpHTML(html); err != nil {
		return fmt.Errorf("dumping document HTML: %w", err)
	}
	return nil
}

// run holds the state of a single Extract call.
type run struct {
	extractor *Extractor
	opts      feedscrape.ExtractOptions
	now       time.Time
	tracker   *Tracker
}

// process takes one container through identity dedup, the repost filter,
// text extraction, fingerprint dedup and permalink resolution. Each step
// either advances or returns the reason the container was skipped.
// Failures reading the container skip that container only.
func (r *run) process(index int, el feedscrape.Element) (post *feedscrape.Post, skip *feedscrape.Skip) {
	var identity string
	defer func() {
		if v := recover(); v != nil {
			post = nil
			skip = &feedscrape.Skip{
				Index:    index,
				Identity: identity,
				Reason:   feedscrape.SkipContainerFault,
				Err:      fmt.Errorf("panic reading container: %v", v),
			}
		}
	}()

	skipped := func(reason feedscrape.SkipReason, err error) *feedscrape.Skip {
		return &feedscrape.Skip{Index: index, Identity: identity, Reason: reason, Err: err}
	}

	identity = containerIdentity(el)
	if r.tracker.IsDuplicateIdentity(identity) {
		return nil, skipped(feedscrape.SkipDuplicateIdentity, nil)
	}
	r.tracker.RecordIdentity(identity)

	raw, err := el.Text()
	if err != nil {
		return nil, skipped(feedscrape.SkipContainerFault, fmt.Errorf("reading container text: %w", err))
	}
	if feedscrape.IsRepost(raw) {
		return nil, skipped(feedscrape.SkipRepost, nil)
	}

	text := extractText(el, raw, orDefault(r.extractor.DescriptionSelectors, DefaultDescriptionSelectors))
	if !feedscrape.HasMinLength(text) {
		return nil, skipped(feedscrape.SkipInsufficientText, nil)
	}

	fp := feedscrape.Fingerprint(text)
	if r.tracker.IsDuplicateFingerprint(fp) {
		return nil, skipped(feedscrape.SkipDuplicateContent, nil)
	}
	r.tracker.RecordFingerprint(fp)

	permalinks := orDefault(r.extractor.PermalinkSelectors, DefaultPermalinkSelectors)
	return &feedscrape.Post{
		Text:     text,
		URL:      ResolvePermalink(el, permalinks, r.extractor.origin(), r.opts.PageURL),
		Identity: identity,
		PostedAt: postedAt(el, orDefault(r.extractor.DateSelectors, DefaultDateSelectors), r.now),
	}, nil
}

func orDefault(selectors, defaults []string) []string {
	if len(selectors) == 0 {
		return defaults
	}
	return selectors
}
