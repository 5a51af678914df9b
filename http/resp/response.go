package resp

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/header"
	"github.com/xy-planning-network/switchback/http/transport"
)

// DefaultRedirectCode is the status code Redirect pairs with a redirect target.
const DefaultRedirectCode = http.StatusSeeOther

const (
	directiveMaxAge       = "max-age"
	directivePrivate      = "private"
	directivePublic       = "public"
	directiveSharedMaxAge = "s-maxage"
)

// A Response accumulates the status code, headers, cookies, content, and redirect target
// of the response to an HTTP request while a handler runs.
//
// A Response is consumed exactly once: either Build turns it into a transport.Response
// or MergeInto folds it into the Response of an enclosing handler.
//
// A Response is not safe for concurrent use; each request owns its own.
type Response struct {
	body     *Body
	code     int
	codeSet  bool
	consumed bool
	cookies  map[string]cookie.Cookie
	data     any
	header   *header.Header
	override *transport.Response
	url      *url.URL
}

// New constructs an empty *Response.
func New() *Response {
	return &Response{
		body:    NewBody(nil),
		cookies: make(map[string]cookie.Cookie),
		header:  header.New(),
	}
}

// SetContent replaces the content with p.
func (r *Response) SetContent(p []byte) { r.body = NewBody(p) }

// SetContentString replaces the content with s.
func (r *Response) SetContentString(s string) { r.body = NewBody([]byte(s)) }

// SetContentStream replaces the content with what can be read from rd.
func (r *Response) SetContentStream(rd io.Reader) { r.body = NewStreamBody(rd) }

// Content reads the whole content, leaving it readable again afterwards.
func (r *Response) Content() (string, error) { return r.body.String() }

// SetContentType sets the Content-Type header.
func (r *Response) SetContentType(ct string) error {
	return r.header.Set(header.ContentTypeName, ct)
}

// HasContentType reports whether the Content-Type header is set.
func (r *Response) HasContentType() bool { return r.header.Has(header.ContentTypeName) }

// ContentType returns the Content-Type header, or "" if it is not set.
func (r *Response) ContentType() string { return r.header.Get(header.ContentTypeName) }

// SetRedirect sets the redirect target along with the status code accompanying it.
func (r *Response) SetRedirect(u *url.URL, code int) {
	r.SetRedirectURI(u)
	r.SetStatusCode(code)
}

// SetRedirectURI sets the redirect target, leaving the status code as is.
func (r *Response) SetRedirectURI(u *url.URL) { r.url = u }

// RedirectURI returns the redirect target, or nil if none is set.
func (r *Response) RedirectURI() *url.URL { return r.url }

// SetStatusCode sets the status code.
//
// No validation of code occurs.
func (r *Response) SetStatusCode(code int) {
	r.code = code
	r.codeSet = true
}

// StatusCode returns the status code, or http.StatusOK if none was set.
func (r *Response) StatusCode() int {
	if !r.codeSet {
		return http.StatusOK
	}
	return r.code
}

// HasStatusCode reports whether a status code was set.
func (r *Response) HasStatusCode() bool { return r.codeSet }

// SetCookie stores c under its name, replacing any cookie of the same name.
func (r *Response) SetCookie(c cookie.Cookie) error {
	if err := r.header.SetCookie(c); err != nil {
		return err
	}

	r.cookies[c.Name] = c
	return nil
}

// DeleteCookie stores an expired cookie under name,
// instructing the client to drop the cookie it holds.
//
// The expired cookie remains retrievable with Cookie.
func (r *Response) DeleteCookie(name string) error {
	if err := r.header.DeleteCookie(name); err != nil {
		return err
	}

	r.cookies[name] = cookie.New(name, "").Expired()
	return nil
}

// Cookie retrieves the cookie stored under name.
func (r *Response) Cookie(name string) (cookie.Cookie, bool) {
	c, ok := r.cookies[name]
	return c, ok
}

// Cookies returns the stored cookies, sorted by name.
func (r *Response) Cookies() []cookie.Cookie {
	names := make([]string, 0, len(r.cookies))
	for name := range r.cookies {
		names = append(names, name)
	}
	slices.Sort(names)

	cs := make([]cookie.Cookie, len(names))
	for i, name := range names {
		cs[i] = r.cookies[name]
	}

	return cs
}

// SetHeader replaces all values of the header name with vals.
func (r *Response) SetHeader(name string, vals ...string) error { return r.header.Set(name, vals...) }

// AddHeader appends vals to the values of the header name.
func (r *Response) AddHeader(name string, vals ...string) error { return r.header.Add(name, vals...) }

// SetHeaderTime replaces all values of the header name with t, formatted as an HTTP date.
func (r *Response) SetHeaderTime(name string, t time.Time) error { return r.header.SetTime(name, t) }

// Header returns the values of the header name joined by ", ", or "" if it is not set.
func (r *Response) Header(name string) string { return r.header.Get(name) }

// HeaderValues returns the values of the header name, or nil if it is not set.
func (r *Response) HeaderValues(name string) []string { return r.header.Values(name) }

// HeaderTime returns the date the header name was set to with SetHeaderTime.
func (r *Response) HeaderTime(name string) (time.Time, bool) { return r.header.Time(name) }

// Headers exposes the header collection of r.
func (r *Response) Headers() *header.Header { return r.header }

// ReplaceTransport uses t as the base Build starts from.
func (r *Response) ReplaceTransport(t transport.Response) { r.override = &t }

// SetPublic marks the response as cacheable by shared caches.
func (r *Response) SetPublic() error {
	r.header.RemoveCacheControlDirective(directivePrivate)
	return r.header.SetCacheControlDirective(directivePublic, "")
}

// SetPrivate marks the response as cacheable only by the client.
func (r *Response) SetPrivate() error {
	r.header.RemoveCacheControlDirective(directivePublic)
	return r.header.SetCacheControlDirective(directivePrivate, "")
}

// SetDate sets the Date header.
func (r *Response) SetDate(t time.Time) error { return r.header.SetTime(header.DateName, t) }

// Date returns the Date header, reporting false unless it was set as a date.
func (r *Response) Date() (time.Time, bool) { return r.header.Time(header.DateName) }

// SetLastModified sets the Last-Modified header.
func (r *Response) SetLastModified(t time.Time) error {
	return r.header.SetTime(header.LastModifiedName, t)
}

// LastModified returns the Last-Modified header, reporting false unless it was set as a date.
func (r *Response) LastModified() (time.Time, bool) { return r.header.Time(header.LastModifiedName) }

// SetExpires sets the Expires header.
func (r *Response) SetExpires(t time.Time) error { return r.header.SetTime(header.ExpiresName, t) }

// Expires returns the Expires header, reporting false unless it was set as a date.
func (r *Response) Expires() (time.Time, bool) { return r.header.Time(header.ExpiresName) }

// SetMaxAge sets the max-age Cache-Control directive in seconds.
func (r *Response) SetMaxAge(seconds int) error {
	return r.header.SetCacheControlDirective(directiveMaxAge, strconv.Itoa(seconds))
}

// MaxAge returns the max-age Cache-Control directive,
// reporting false if it is absent or not a number.
func (r *Response) MaxAge() (int, bool) { return r.intDirective(directiveMaxAge) }

// SetSharedMaxAge sets the s-maxage Cache-Control directive in seconds.
func (r *Response) SetSharedMaxAge(seconds int) error {
	return r.header.SetCacheControlDirective(directiveSharedMaxAge, strconv.Itoa(seconds))
}

// SharedMaxAge returns the s-maxage Cache-Control directive,
// reporting false if it is absent or not a number.
func (r *Response) SharedMaxAge() (int, bool) { return r.intDirective(directiveSharedMaxAge) }

// Consumed reports whether Build or MergeInto already consumed r.
func (r *Response) Consumed() bool { return r.consumed }

// MergeInto folds r into parent, consuming r, and returns parent.
//
// MergeInto copies, in order:
//   - the content, unless known to be empty
//   - the Content-Type header, if set
//   - the redirect target, if set, without its status code
//   - the transport.Response set with ReplaceTransport, if any
//   - the status code, if set
//   - every cookie
//   - every other header, appending values to those parent already has
//
// Headers set as dates stay dates when parent does not hold them already.
//
// When MergeInto fails, neither parent nor r change.
func (r *Response) MergeInto(parent *Response) (*Response, error) {
	if r.consumed {
		return parent, ErrConsumed
	}

	if parent.consumed {
		return parent, fmt.Errorf("%w: cannot merge into parent", ErrConsumed)
	}

	if err := r.mergeHeader(parent.header.Clone()); err != nil {
		return parent, err
	}

	if !r.body.Empty() {
		parent.body = r.body
	}

	if err := r.mergeHeader(parent.header); err != nil {
		return parent, err
	}

	if r.url != nil {
		parent.SetRedirectURI(r.url)
	}

	if r.override != nil {
		parent.ReplaceTransport(*r.override)
	}

	if r.codeSet {
		parent.SetStatusCode(r.code)
	}

	for _, c := range r.Cookies() {
		parent.cookies[c.Name] = c
	}

	if r.data != nil && parent.data == nil {
		parent.data = r.data
	}

	r.consumed = true
	return parent, nil
}

// mergeHeader applies the Content-Type, cookies and headers of r onto h.
func (r *Response) mergeHeader(h *header.Header) error {
	if r.HasContentType() {
		if err := h.Set(header.ContentTypeName, r.ContentType()); err != nil {
			return err
		}
	}

	for _, c := range r.Cookies() {
		if err := h.SetCookie(c); err != nil {
			return err
		}
	}

	for name, f := range r.header.All() {
		if name == header.ContentTypeName {
			continue
		}

		var err error
		if t, ok := f.Time(); ok && !h.Has(name) {
			err = h.SetTime(name, t)
		} else {
			err = h.Add(name, f.Values()...)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Build produces the transport.Response to write for r, consuming r.
//
// Build starts from the transport.Response set with ReplaceTransport, or transport.New,
// and applies, in order:
//   - the status code, if set
//   - the content, unless known to be empty
//   - the Content-Type header, if set
//   - the Location header, if a redirect target is set
//   - every other header, multiple values joined on one line
//   - a Set-Cookie header for every cookie, including expired ones
func (r *Response) Build() (transport.Response, error) {
	if r.consumed {
		return transport.Response{}, ErrConsumed
	}

	res := transport.New()
	if r.override != nil {
		res = *r.override
	}

	if r.codeSet {
		res = res.WithStatus(r.code)
	}

	if !r.body.Empty() {
		if err := r.body.Rewind(); err != nil {
			return transport.Response{}, err
		}
		res = res.WithBody(r.body)
	}

	if r.HasContentType() {
		res = res.WithHeader(header.ContentTypeName, r.ContentType())
	}

	if r.url != nil {
		res = res.WithHeader(header.LocationName, r.url.String())
	}

	for name, f := range r.header.All() {
		if name == header.ContentTypeName {
			continue
		}

		res = res.WithAddedHeader(name, strings.Join(f.Values(), ", "))
	}

	for _, c := range r.Cookies() {
		res = res.WithAddedHeader(header.SetCookieName, c.String())
	}

	r.consumed = true
	return res, nil
}

func (r *Response) intDirective(name string) (int, bool) {
	val, ok := r.header.CacheControlDirective(name)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return n, true
}
