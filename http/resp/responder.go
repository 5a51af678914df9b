package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/transport"
	"github.com/xy-planning-network/switchback/logger"
	"go.uber.org/multierr"
)

const (
	jsonContentType  = "application/json; charset=UTF-8"
	plainContentType = "text/plain; charset=utf-8"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// It exposes many common methods for writing structured data as an HTTP response.
// These are the forms of response Responder can execute:
//
//	Json
//	Redirect
//	Raw
//	Err
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions, applied to the *Response stored in the request's context
// or, without one, to a new *Response.
type Responder struct {
	logger logger.Logger

	// Encode content with the encoding the client prefers
	compress bool

	// Error message to use for "contact us" style client-side error messages
	contactErrMsg string

	// Root URL the responder is listening on, used as the default redirect target
	rootUrl *url.URL

	// Signs values for SignedCookie
	signer *cookie.Signer
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := new(Responder)
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	return d
}

// Logger exposes the logger.Logger the Responder logs through.
func (doer *Responder) Logger() logger.Logger { return doer.logger }

// Err logs the error causing the failure state and responds in plain text.
// The status code is http.StatusInternalServerError unless opts, or the *Response in the request context,
// set an error status code (4xx or 5xx); any other status code is replaced.
//
// Use in exceptional circumstances when no other response can be formed.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(r, opts...)
	if nested != nil {
		err = multierr.Append(err, nested)
	}

	if rr == nil || rr.Consumed() {
		rr = New()
	}

	if err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, rr.StatusCode(), nil))
	}

	if !rr.HasStatusCode() || rr.StatusCode() < http.StatusBadRequest {
		rr.SetStatusCode(http.StatusInternalServerError)
	}

	msg := http.StatusText(rr.StatusCode())
	if doer.contactErrMsg != "" {
		msg = doer.contactErrMsg
	}

	rr.SetContentString(msg + "\n")
	_ = rr.SetContentType(plainContentType)
	_ = rr.SetHeader("X-Content-Type-Options", "nosniff")

	doer.Write(w, r, rr)
}

type jsonSchema struct {
	D any `json:"data,omitempty"`
}

// Json responds with data in JSON format, collating it from Data() and setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {}
//	}
//
// The default status code is http.StatusOK.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	if !rr.HasStatusCode() {
		rr.SetStatusCode(http.StatusOK)
	}

	b, err := json.Marshal(jsonSchema{D: rr.data})
	if err != nil {
		doer.Err(w, r, err)
		return err
	}

	rr.SetContent(append(b, '\n'))
	if err := rr.SetContentType(jsonContentType); err != nil {
		return err
	}

	return doer.Write(w, r, rr)
}

// Raw responds with whatever opts accumulated on the *Response.
func (doer *Responder) Raw(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	return doer.Write(w, r, rr)
}

// Redirect responds with a redirect, given Url() or Redirect() set the redirect destination.
// If neither is passed in opts and the *Response in the request context holds no redirect destination,
// then ToRoot() sets the redirect destination.
//
// The default response status code is DefaultRedirectCode.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	if rr, ok := FromContext(r.Context()); !ok || rr.RedirectURI() == nil {
		opts = append([]Fn{ToRoot()}, opts...)
	}

	rr, err := doer.do(r, opts...)
	if err != nil {
		return err
	}

	if rr.RedirectURI() == nil {
		return fmt.Errorf("%w: cannot redirect, no redirect target", ErrMissingData)
	}

	code := rr.StatusCode()
	switch {
	case !rr.HasStatusCode():
		code = DefaultRedirectCode
	case code >= http.StatusMultipleChoices && code <= http.StatusPermanentRedirect:
		// NOTE(dlk): code is already a 3xx, so do nothing
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		code = http.StatusSeeOther
	case code >= http.StatusInternalServerError:
		code = http.StatusTemporaryRedirect
	default:
		code = http.StatusFound
	}

	rr.SetRedirect(rr.RedirectURI(), code)
	return doer.Write(w, r, rr)
}

// Write builds rr and writes the result to w,
// encoding the content when WithCompression enabled it.
//
// Write consumes rr.
func (doer *Responder) Write(w http.ResponseWriter, r *http.Request, rr *Response) error {
	res, err := rr.Build()
	if err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, rr.StatusCode(), nil))
		return err
	}

	if doer.compress && r != nil {
		encoded, err := transport.Encode(res, r.Header.Get("Accept-Encoding"))
		if err != nil {
			doer.logger.Warn(err.Error(), newLogContext(r, err, res.Status(), nil))
		} else {
			res = encoded
		}
	}

	if err := res.Write(w); err != nil {
		doer.logger.Error(err.Error(), newLogContext(r, err, res.Status(), nil))
		return err
	}

	return nil
}

// do applies all options to the *Response stored in the *http.Request.Context,
// or a new *Response if none is.
//
// Calling code ought to pass Options in the correct order.
// An option requiring something set by another one should come after.
// do nonetheless retries those options returning errors once all others have been applied.
func (doer *Responder) do(r *http.Request, opts ...Fn) (*Response, error) {
	rr, ok := FromContext(r.Context())
	if !ok {
		rr = New()
	}

	if rr.Consumed() {
		return nil, ErrConsumed
	}

	redos := make([]Fn, 0)
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return nil, ErrDone
		default:
			if err := opt(doer, rr); err != nil {
				redos = append(redos, opt)
			}
		}
	}

	var err error
	for _, opt := range redos {
		err = multierr.Append(err, opt(doer, rr))
	}

	if err != nil {
		return rr, err
	}

	return rr, nil
}
