package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/feedscrape"
	"github.com/go-rod/rod/lib/proto"
)

// CaptureCookies opens origin in the manager's browser, calls wait, and
// then returns every cookie the browser holds. wait typically blocks
// until the user has logged in through the browser window, so the
// manager should not be headless.
func CaptureCookies(ctx context.Context, manager *BrowserManager, origin string, wait func(context.Context) error) ([]*feedscrape.Cookie, error) {
	page, err := openPage(manager.Browser(), true)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: DefaultUserAgent}); err != nil {
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	if err := page.Navigate(origin); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", origin, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for %s to load: %w", origin, err)
	}

	if err := wait(ctx); err != nil {
		return nil, err
	}

	cookies, err := page.Browser().GetCookies()
	if err != nil {
		return nil, fmt.Errorf("reading cookies: %w", err)
	}
	return Cookies(cookies), nil
}
