// Package feedscrape extracts recent posts from rendered social feed pages.
// It loads company pages and member activity feeds in a browser, picks
// post containers out of markup that changes without notice, and returns
// a short, deduplicated, ordered list of posts with their permalinks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package feedscrape
