package feedscrape

import (
	"context"
	"strings"
)

// Cookie is a browser cookie used to authenticate feed requests.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// SessionCookieName is the cookie that carries an authenticated session.
const SessionCookieName = "li_at"

// FilterCookies returns the cookies whose domain contains the given domain.
func FilterCookies(cookies []*Cookie, domain string) []*Cookie {
	var kept []*Cookie
	for _, c := range cookies {
		if strings.Contains(c.Domain, domain) {
			kept = append(kept, c)
		}
	}
	return kept
}

// HasSessionCookie reports whether cookies include the session cookie.
func HasSessionCookie(cookies []*Cookie) bool {
	for _, c := range cookies {
		if c.Name == SessionCookieName {
			return true
		}
	}
	return false
}

// CookieStore persists authentication cookies.
type CookieStore interface {
	// LoadCookies returns the stored cookies.
	// Returns ENOTFOUND if no cookies have been saved.
	LoadCookies(ctx context.Context) ([]*Cookie, error)

	// SaveCookies replaces the stored cookies.
	SaveCookies(ctx context.Context, cookies []*Cookie) error
}
