package auth

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// Cookie is the subset of a browser cookie carried over into the probe's
// own HTTP session.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// Session is the reusable transport context a login produces: the browser's
// cookies in a jar plus the headers every request must carry. It is built
// once and only read afterwards.
type Session struct {
	Client  *http.Client
	Headers http.Header
}

// NewSession transfers cookies one by one into a fresh jar, preserving each
// cookie's domain and path scoping, and pins the browser's user agent as a
// fixed outgoing header.
func NewSession(cookies []Cookie, userAgent string) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	for _, c := range cookies {
		u := &url.URL{
			Scheme: "https",
			Host:   strings.TrimPrefix(c.Domain, "."),
			Path:   c.Path,
		}
		jar.SetCookies(u, []*http.Cookie{{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
		}})
	}

	headers := http.Header{}
	headers.Set("User-Agent", userAgent)

	return &Session{
		Client:  &http.Client{Jar: jar},
		Headers: headers,
	}, nil
}
