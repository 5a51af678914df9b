package cookie

import (
	"fmt"
	"net/http"
	"time"
)

// A SameSite restricts which requests a browser attaches a Cookie to.
type SameSite string

const (
	SameSiteDefault SameSite = ""
	SameSiteLax     SameSite = "Lax"
	SameSiteStrict  SameSite = "Strict"
	SameSiteNone    SameSite = "None"
)

// DefaultPath is the Path New assigns.
const DefaultPath = "/"

// ExpiredAt is the moment every Cookie returned by Expired expires at.
var ExpiredAt = time.Unix(0, 0).UTC()

// A Cookie is an HTTP cookie set on a response.
type Cookie struct {
	Name  string
	Value string

	Path    string
	Domain  string
	Expires time.Time

	// MaxAge == 0 omits the Max-Age attribute.
	// MaxAge < 0 deletes the cookie now, rendered as Max-Age=0.
	MaxAge int

	Secure   bool
	HttpOnly bool
	SameSite SameSite
}

// New constructs a Cookie scoped to DefaultPath.
func New(name, value string) Cookie {
	return Cookie{Name: name, Value: value, Path: DefaultPath}
}

// Expired returns a copy of c instructing the client to drop it.
func (c Cookie) Expired() Cookie {
	c.Expires = ExpiredAt
	c.MaxAge = -1
	return c
}

// IsExpired reports whether a client holding c at now would drop it.
func (c Cookie) IsExpired(now time.Time) bool {
	switch {
	case c.MaxAge < 0:
		return true
	case c.MaxAge > 0:
		return false
	default:
		return !c.Expires.IsZero() && !now.Before(c.Expires)
	}
}

// Valid asserts c can be serialized into a Set-Cookie header.
func (c Cookie) Valid() error {
	if err := c.HTTPCookie().Valid(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	return nil
}

// HTTPCookie converts c into an *http.Cookie.
func (c Cookie) HTTPCookie() *http.Cookie {
	hc := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Expires:  c.Expires,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}

	switch c.SameSite {
	case SameSiteLax:
		hc.SameSite = http.SameSiteLaxMode
	case SameSiteStrict:
		hc.SameSite = http.SameSiteStrictMode
	case SameSiteNone:
		hc.SameSite = http.SameSiteNoneMode
	}

	return hc
}

// String serializes c as the value of a Set-Cookie header.
// An invalid c serializes to the empty string.
func (c Cookie) String() string { return c.HTTPCookie().String() }
