package resp

import (
	"net/url"

	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithCompression enables encoding response content
// with the encoding the client's Accept-Encoding header prefers.
func WithCompression(enabled bool) ResponderOptFn {
	return func(d *Responder) {
		d.compress = enabled
	}
}

// WithContactErrMsg sets the message clients read when Err responds.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithCookieSigner sets the *cookie.Signer SignedCookie uses.
//
// SignedCookie requires this option.
func WithCookieSigner(s *cookie.Signer) ResponderOptFn {
	return func(d *Responder) {
		d.signer = s
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for redirecting.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
