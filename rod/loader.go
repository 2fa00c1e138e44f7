package rod

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/fwojciec/feedscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Loader implements feedscrape.DocumentLoader at compile time.
var _ feedscrape.DocumentLoader = (*Loader)(nil)

// Loader defaults.
const (
	DefaultNavigationTimeout = 60 * time.Second
	DefaultSettleDelay       = 2 * time.Second
	DefaultScrolls           = 3
	DefaultScrollDistance    = 600
	DefaultUserAgent         = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Loader opens feed pages in a browser and prepares them for extraction:
// it installs the saved session cookies, navigates, switches the feed to
// most recent first, scrolls to load more posts, and expands truncated
// post text.
//
// Loader is safe for concurrent use. Each Load opens its own page.
type Loader struct {
	manager *BrowserManager
	cookies feedscrape.CookieStore
	closed  atomic.Bool

	timeout    time.Duration
	settle     time.Duration
	scrolls    int
	distance   float64
	pause      time.Duration
	userAgent  string
	sortRecent bool
	expand     bool
	stealth    bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithNavigationTimeout bounds navigation and the wait for the load event.
func WithNavigationTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithSettleDelay sets the pause after the load event and after each
// interaction that changes the feed.
func WithSettleDelay(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.settle = d
	}
}

// WithScrolls sets how many times the page is scrolled down and by how
// many pixels. Each scroll is followed by a pause of one to one and a
// half times the scroll pause.
func WithScrolls(n int, distance float64) LoaderOption {
	return func(l *Loader) {
		l.scrolls = n
		l.distance = distance
	}
}

// WithScrollPause sets the base pause between scrolls. Defaults to one second.
func WithScrollPause(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.pause = d
	}
}

// WithUserAgent overrides the browser user agent. An empty string keeps
// the browser's own.
func WithUserAgent(ua string) LoaderOption {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithSortRecent controls whether the loader tries to sort the feed by
// most recent. Defaults to true.
func WithSortRecent(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.sortRecent = enabled
	}
}

// WithExpandSeeMore controls whether truncated posts are expanded.
// Defaults to true.
func WithExpandSeeMore(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.expand = enabled
	}
}

// WithStealth controls whether pages are opened with evasions that hide
// browser automation from the site. Defaults to true.
func WithStealth(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.stealth = enabled
	}
}

// NewLoader creates a Loader that opens pages in the manager's browser.
// cookies may be nil to load pages without a session. The Loader takes
// ownership of the manager and closes it in Close.
func NewLoader(manager *BrowserManager, cookies feedscrape.CookieStore, opts ...LoaderOption) *Loader {
	l := &Loader{
		manager:    manager,
		cookies:    cookies,
		timeout:    DefaultNavigationTimeout,
		settle:     DefaultSettleDelay,
		scrolls:    DefaultScrolls,
		distance:   DefaultScrollDistance,
		pause:      time.Second,
		userAgent:  DefaultUserAgent,
		sortRecent: true,
		expand:     true,
		stealth:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load opens url in a new page and returns it once the feed is ready.
// The caller must close the returned document.
//
// Returns ENOTFOUND if the cookie store has no saved session and
// EINVALID if the loader has been closed.
func (l *Loader) Load(ctx context.Context, url string) (_ feedscrape.RenderedDocument, err error) {
	if l.closed.Load() {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "loader is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := l.cookieParams(ctx)
	if err != nil {
		return nil, err
	}

	page, err := openPage(l.manager.Browser(), l.stealth)
	if err != nil {
		return nil, err
	}
	l.manager.IncrementPageCount()
	defer func() {
		if err != nil {
			_ = page.Close()
		}
	}()

	page = page.Context(ctx)

	if l.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.userAgent}); err != nil {
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}
	if len(params) > 0 {
		if err := page.SetCookies(params); err != nil {
			return nil, fmt.Errorf("setting cookies: %w", err)
		}
	}

	if err := l.navigate(page, url); err != nil {
		return nil, err
	}
	if err := sleep(ctx, l.settle); err != nil {
		return nil, err
	}

	doc := &Document{page: page, url: url}

	if l.sortRecent && l.sortByRecent(ctx, doc) {
		if err := sleep(ctx, l.settle); err != nil {
			return nil, err
		}
	}
	if err := l.scroll(ctx, page); err != nil {
		return nil, err
	}
	if l.expand && l.expandSeeMore(ctx, doc) {
		if err := sleep(ctx, l.settle); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// Close closes the browser. Close is safe to call multiple times.
func (l *Loader) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.manager.Close()
}

func (l *Loader) cookieParams(ctx context.Context) ([]*proto.NetworkCookieParam, error) {
	if l.cookies == nil {
		return nil, nil
	}
	cookies, err := l.cookies.LoadCookies(ctx)
	if feedscrape.ErrorCode(err) == feedscrape.ENOTFOUND {
		return nil, feedscrape.Errorf(feedscrape.ENOTFOUND, "no saved session cookies, run the login command first")
	} else if err != nil {
		return nil, fmt.Errorf("loading cookies: %w", err)
	}
	return CookieParams(cookies), nil
}

func (l *Loader) navigate(page *rod.Page, url string) error {
	p := page.Timeout(l.timeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return nil
}

// sortByRecent opens the sort menu and picks the most recent ordering.
// Feeds without a sort menu keep their default order. Reports whether
// the feed was re-sorted.
func (l *Loader) sortByRecent(ctx context.Context, doc *Document) bool {
	menu, ok := FindFirst(doc, SortLocators).(*Element)
	if !ok || menu.click() != nil {
		return false
	}
	// The menu renders asynchronously.
	if sleep(ctx, time.Second) != nil {
		return false
	}

	option, ok := FindFirst(doc, RecentLocators).(*Element)
	if !ok {
		return false
	}
	return option.click() == nil
}

func (l *Loader) scroll(ctx context.Context, page *rod.Page) error {
	for range l.scrolls {
		if err := page.Mouse.Scroll(0, l.distance, 1); err != nil {
			return fmt.Errorf("scrolling: %w", err)
		}
		if err := sleep(ctx, l.pause+jitter(l.pause/2)); err != nil {
			return err
		}
	}
	return nil
}

// expandSeeMore clicks every visible "see more" control. Controls that
// cannot be clicked are left collapsed. Reports whether any were clicked.
func (l *Loader) expandSeeMore(ctx context.Context, doc *Document) bool {
	clicked := false
	for _, loc := range SeeMoreLocators {
		for _, el := range FindVisible(doc, []Locator{loc}) {
			if ctx.Err() != nil {
				return clicked
			}
			button, ok := el.(*Element)
			if !ok || button.click() != nil {
				continue
			}
			clicked = true
			_ = sleep(ctx, l.pause/2)
		}
	}
	return clicked
}

// openPage opens a blank page, with automation evasions when stealthy is set.
func openPage(browser *rod.Browser, stealthy bool) (*rod.Page, error) {
	if stealthy {
		page, err := stealth.Page(browser)
		if err != nil {
			return nil, fmt.Errorf("opening stealth page: %w", err)
		}
		return page, nil
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return page, nil
}

// jitter returns a random duration in [0, limit).
func jitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
