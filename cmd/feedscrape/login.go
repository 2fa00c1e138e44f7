package main

import (
	"fmt"

	"github.com/fwojciec/feedscrape"
)

// cookieDomain selects the cookies worth saving.
const cookieDomain = "linkedin.com"

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Opening a browser window...")

	cookies, err := deps.Capture(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	cookies = feedscrape.FilterCookies(cookies, cookieDomain)
	if len(cookies) == 0 {
		fmt.Fprintln(deps.Stderr, "warning: no cookies found for linkedin.com, make sure you are logged in")
		return feedscrape.Errorf(feedscrape.ENOTFOUND, "no session cookies captured")
	}

	if err := deps.Cookies.SaveCookies(deps.Ctx, cookies); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d cookies to %s\n", len(cookies), c.Cookies)
	if feedscrape.HasSessionCookie(cookies) {
		fmt.Fprintf(deps.Stdout, "Found the %s session cookie\n", feedscrape.SessionCookieName)
	} else {
		fmt.Fprintf(deps.Stderr, "warning: %s cookie not found, you may need to log in again\n", feedscrape.SessionCookieName)
	}

	return nil
}
