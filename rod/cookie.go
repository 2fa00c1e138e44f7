package rod

import (
	"github.com/fwojciec/feedscrape"
	"github.com/go-rod/rod/lib/proto"
)

// CookieParams converts stored cookies into the form the browser accepts.
// Missing paths default to "/".
func CookieParams(cookies []*feedscrape.Cookie) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		}
		if c.Expires > 0 {
			p.Expires = proto.TimeSinceEpoch(c.Expires)
		}
		params = append(params, p)
	}
	return params
}

// Cookies converts browser cookies into their stored form.
// Session cookies are stored with an expiry of -1.
func Cookies(cookies []*proto.NetworkCookie) []*feedscrape.Cookie {
	out := make([]*feedscrape.Cookie, 0, len(cookies))
	for _, c := range cookies {
		expires := float64(c.Expires)
		if c.Session {
			expires = -1
		}
		out = append(out, &feedscrape.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return out
}
