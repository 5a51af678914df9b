package header

import (
	"fmt"
	"iter"
	"net/http"
	"slices"
	"time"

	"github.com/xy-planning-network/switchback/http/cookie"
	"golang.org/x/net/http/httpguts"
)

const (
	CacheControlName = "Cache-Control"
	ContentTypeName  = "Content-Type"
	DateName         = "Date"
	ExpiresName      = "Expires"
	LastModifiedName = "Last-Modified"
	LocationName     = "Location"
	SetCookieName    = "Set-Cookie"
)

// A Header is an ordered, case-insensitive, multi-valued collection of header fields.
//
// A Header is not safe for concurrent use.
type Header struct {
	order   []string
	fields  map[string]*Field
	cookies map[string]cookie.Cookie
}

// New constructs an empty *Header.
func New() *Header {
	return &Header{
		fields:  make(map[string]*Field),
		cookies: make(map[string]cookie.Cookie),
	}
}

// Add appends vals to those already set for name.
// If name holds a date, the date is kept as its formatted string.
func (h *Header) Add(name string, vals ...string) error {
	key, err := validate(name, vals)
	if err != nil {
		return err
	}

	if len(vals) == 0 {
		return nil
	}

	f, ok := h.fields[key]
	if !ok {
		h.put(key, &Field{name: key, values: slices.Clone(vals)})
		return nil
	}

	f.values = append(f.values, vals...)
	f.t, f.isTime = time.Time{}, false
	return nil
}

// Set replaces all values for name with vals.
// Calling Set without vals removes name.
func (h *Header) Set(name string, vals ...string) error {
	key, err := validate(name, vals)
	if err != nil {
		return err
	}

	if len(vals) == 0 {
		h.Del(key)
		return nil
	}

	h.put(key, &Field{name: key, values: slices.Clone(vals)})
	return nil
}

// SetTime replaces all values for name with t, formatted as an HTTP date.
func (h *Header) SetTime(name string, t time.Time) error {
	key, err := validate(name, nil)
	if err != nil {
		return err
	}

	t = t.UTC()
	h.put(key, &Field{name: key, values: []string{t.Format(http.TimeFormat)}, t: t, isTime: true})
	return nil
}

// Del removes name.
func (h *Header) Del(name string) {
	key := http.CanonicalHeaderKey(name)
	if _, ok := h.fields[key]; !ok {
		return
	}

	delete(h.fields, key)
	h.order = slices.DeleteFunc(h.order, func(k string) bool { return k == key })
}

// Get joins the values for name, or returns "" if name is not set.
func (h *Header) Get(name string) string {
	f, ok := h.fields[http.CanonicalHeaderKey(name)]
	if !ok {
		return ""
	}

	return f.String()
}

// Values returns the values for name, or nil if name is not set.
func (h *Header) Values(name string) []string {
	f, ok := h.fields[http.CanonicalHeaderKey(name)]
	if !ok {
		return nil
	}

	return f.Values()
}

// Time returns the date set for name with SetTime.
// If name is not set, or was set with strings, Time reports false.
func (h *Header) Time(name string) (time.Time, bool) {
	f, ok := h.fields[http.CanonicalHeaderKey(name)]
	if !ok {
		return time.Time{}, false
	}

	return f.Time()
}

// Has reports whether name is set.
func (h *Header) Has(name string) bool {
	_, ok := h.fields[http.CanonicalHeaderKey(name)]
	return ok
}

// Len is the number of fields set, not counting cookies.
func (h *Header) Len() int { return len(h.order) }

// All iterates over the fields in the order they were first set.
// Cookies are not included.
func (h *Header) All() iter.Seq2[string, Field] {
	return func(yield func(string, Field) bool) {
		for _, key := range h.order {
			if !yield(key, *h.fields[key]) {
				return
			}
		}
	}
}

// SetCookie stores c, replacing any cookie of the same name.
func (h *Header) SetCookie(c cookie.Cookie) error {
	if err := c.Valid(); err != nil {
		return err
	}

	h.cookies[c.Name] = c
	return nil
}

// DeleteCookie stores an expired cookie under name,
// instructing the client to drop the cookie it holds.
func (h *Header) DeleteCookie(name string) error {
	return h.SetCookie(cookie.New(name, "").Expired())
}

// Cookie retrieves the cookie stored under name.
func (h *Header) Cookie(name string) (cookie.Cookie, bool) {
	c, ok := h.cookies[name]
	return c, ok
}

// Cookies iterates over the stored cookies, sorted by name.
func (h *Header) Cookies() iter.Seq[cookie.Cookie] {
	names := make([]string, 0, len(h.cookies))
	for name := range h.cookies {
		names = append(names, name)
	}
	slices.Sort(names)

	return func(yield func(cookie.Cookie) bool) {
		for _, name := range names {
			if !yield(h.cookies[name]) {
				return
			}
		}
	}
}

// Clone deep copies h.
func (h *Header) Clone() *Header {
	c := New()
	for key, f := range h.All() {
		f.values = f.Values()
		c.put(key, &f)
	}

	for name, ck := range h.cookies {
		c.cookies[name] = ck
	}

	return c
}

// HTTPHeader renders h as an http.Header,
// with one Set-Cookie value per stored cookie.
func (h *Header) HTTPHeader() http.Header {
	out := make(http.Header, len(h.order)+1)
	for key, f := range h.All() {
		out[key] = f.Values()
	}

	for c := range h.Cookies() {
		out.Add(SetCookieName, c.String())
	}

	return out
}

// put stores f under key, keeping the position key was first set at.
func (h *Header) put(key string, f *Field) {
	if _, ok := h.fields[key]; !ok {
		h.order = append(h.order, key)
	}

	h.fields[key] = f
}

// validate canonicalizes name, asserting it and vals are valid header field parts.
func validate(name string, vals []string) (string, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	key := http.CanonicalHeaderKey(name)
	if key == SetCookieName {
		return "", ErrSetCookie
	}

	for _, v := range vals {
		if !httpguts.ValidHeaderFieldValue(v) {
			return "", fmt.Errorf("%w: %s: %q", ErrInvalidValue, key, v)
		}
	}

	return key, nil
}
