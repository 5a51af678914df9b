package header

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Directive is one comma-separated part of a Cache-Control field, e.g., max-age=60.
// A Directive without a Value is a flag, e.g., public.
type Directive struct {
	Name  string
	Value string
}

// String renders d, quoting Value when it is not a token.
func (d Directive) String() string {
	if d.Value == "" {
		return d.Name
	}

	if isToken(d.Value) {
		return d.Name + "=" + d.Value
	}

	return d.Name + "=" + strconv.Quote(d.Value)
}

// A CacheControl is the parsed, ordered set of directives of a Cache-Control field.
type CacheControl []Directive

// ParseCacheControl splits the value of a Cache-Control field into its directives.
// Directive names are lowercased; quoted values are unquoted.
func ParseCacheControl(val string) CacheControl {
	var cc CacheControl
	for _, part := range splitDirectives(val) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, _ := strings.Cut(part, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if unquoted, err := strconv.Unquote(value); err == nil && strings.HasPrefix(value, `"`) {
			value = unquoted
		}

		cc = cc.Set(name, value)
	}

	return cc
}

// Get retrieves the value of the directive name,
// reporting false if the directive is absent.
// A flag directive that is present returns "" and true.
func (cc CacheControl) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, d := range cc {
		if d.Name == name {
			return d.Value, true
		}
	}

	return "", false
}

// Set replaces the directive name in place or appends it.
func (cc CacheControl) Set(name, value string) CacheControl {
	name = strings.ToLower(name)
	for i, d := range cc {
		if d.Name == name {
			cc[i].Value = value
			return cc
		}
	}

	return append(cc, Directive{Name: name, Value: value})
}

// Del removes the directive name.
func (cc CacheControl) Del(name string) CacheControl {
	name = strings.ToLower(name)
	out := cc[:0]
	for _, d := range cc {
		if d.Name != name {
			out = append(out, d)
		}
	}

	return out
}

// String renders cc as the value of a Cache-Control field.
func (cc CacheControl) String() string {
	parts := make([]string, len(cc))
	for i, d := range cc {
		parts[i] = d.String()
	}

	return strings.Join(parts, ", ")
}

// CacheControl parses the Cache-Control field of h.
func (h *Header) CacheControl() CacheControl {
	return ParseCacheControl(h.Get(CacheControlName))
}

// CacheControlDirective retrieves the value of the Cache-Control directive name.
func (h *Header) CacheControlDirective(name string) (string, bool) {
	return h.CacheControl().Get(name)
}

// SetCacheControlDirective sets the Cache-Control directive name to value.
// An empty value sets a flag directive.
func (h *Header) SetCacheControlDirective(name, value string) error {
	if !isToken(name) {
		return fmt.Errorf("%w: Cache-Control directive %q", ErrInvalidName, name)
	}

	return h.Set(CacheControlName, h.CacheControl().Set(name, value).String())
}

// RemoveCacheControlDirective removes the Cache-Control directive name,
// removing the Cache-Control field when no directives remain.
func (h *Header) RemoveCacheControlDirective(name string) {
	if !h.Has(CacheControlName) {
		return
	}

	cc := h.CacheControl().Del(name)
	if len(cc) == 0 {
		h.Del(CacheControlName)
		return
	}

	// NOTE: re-rendering parsed directives cannot produce an invalid value
	_ = h.Set(CacheControlName, cc.String())
}

// splitDirectives splits val on commas falling outside of quoted strings.
func splitDirectives(val string) []string {
	var (
		parts  []string
		quoted bool
		start  int
	)

	for i := 0; i < len(val); i++ {
		switch val[i] {
		case '\\':
			if quoted {
				i++
			}
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				parts = append(parts, val[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, val[start:])
}

func isToken(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !httpguts.IsTokenRune(r) {
			return false
		}
	}

	return true
}
