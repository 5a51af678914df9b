package resp

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/xy-planning-network/switchback/http/cookie"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(*Responder, *Response) error

// AddHeader appends vals to the values of the header name.
func AddHeader(name string, vals ...string) Fn {
	return func(_ *Responder, r *Response) error {
		return r.AddHeader(name, vals...)
	}
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ *Responder, r *Response) error {
		r.SetStatusCode(c)
		return nil
	}
}

// Content replaces the response content with p.
//
// Used with Responder.Raw.
func Content(p []byte) Fn {
	return func(_ *Responder, r *Response) error {
		r.SetContent(p)
		return nil
	}
}

// ContentString replaces the response content with s.
//
// Used with Responder.Raw.
func ContentString(s string) Fn {
	return func(_ *Responder, r *Response) error {
		r.SetContentString(s)
		return nil
	}
}

// ContentType sets the Content-Type header.
func ContentType(ct string) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetContentType(ct)
	}
}

// Cookie stores c on the response.
func Cookie(c cookie.Cookie) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetCookie(c)
	}
}

// Data stores the provided value for encoding as the response content.
//
// Used with Responder.Json.
func Data(d any) Fn {
	return func(_ *Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// DeleteCookie instructs the client to drop the cookie name.
func DeleteCookie(name string) Fn {
	return func(_ *Responder, r *Response) error {
		return r.DeleteCookie(name)
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d *Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(nil, e, http.StatusInternalServerError, nil))
		}

		r.SetStatusCode(http.StatusInternalServerError)
		return nil
	}
}

// Expires sets the Expires header.
func Expires(t time.Time) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetExpires(t)
	}
}

// Header replaces all values of the header name with vals.
func Header(name string, vals ...string) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetHeader(name, vals...)
	}
}

// LastModified sets the Last-Modified header.
func LastModified(t time.Time) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetLastModified(t)
	}
}

// MaxAge sets the max-age Cache-Control directive in seconds.
func MaxAge(seconds int) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetMaxAge(seconds)
	}
}

// Param adds the query parameter to the response's redirect target.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ *Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Private marks the response as cacheable only by the client.
func Private() Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetPrivate()
	}
}

// Public marks the response as cacheable by shared caches.
func Public() Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetPublic()
	}
}

// Redirect parses u and sets it as the redirect target with DefaultRedirectCode.
func Redirect(u string) Fn {
	return func(_ *Responder, r *Response) error {
		parsed, err := parseURL(u)
		if err != nil {
			return err
		}

		r.SetRedirect(parsed, DefaultRedirectCode)
		return nil
	}
}

// SharedMaxAge sets the s-maxage Cache-Control directive in seconds.
func SharedMaxAge(seconds int) Fn {
	return func(_ *Responder, r *Response) error {
		return r.SetSharedMaxAge(seconds)
	}
}

// SignedCookie signs the value of c before storing c on the response.
//
// If WithCookieSigner was not called setting up the Responder, ErrBadConfig returns.
func SignedCookie(c cookie.Cookie) Fn {
	return func(d *Responder, r *Response) error {
		if d.signer == nil {
			return fmt.Errorf("%w: no cookie signer", ErrBadConfig)
		}

		signed, err := d.signer.Sign(c)
		if err != nil {
			return err
		}

		return r.SetCookie(signed)
	}
}

// ToRoot sets the Responder's root URL as the redirect target.
func ToRoot() Fn {
	return func(d *Responder, r *Response) error {
		if d.rootUrl == nil {
			return nil
		}

		u := *d.rootUrl
		r.SetRedirectURI(&u)
		return nil
	}
}

// Url parses u and sets it as the redirect target, leaving the status code as is.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ *Responder, r *Response) error {
		parsed, err := parseURL(u)
		if err != nil {
			return err
		}

		r.SetRedirectURI(parsed)
		return nil
	}
}

func parseURL(u string) (*url.URL, error) {
	parsed, err := url.ParseRequestURI(u)
	if err != nil {
		return nil, fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
	}

	return parsed, nil
}
