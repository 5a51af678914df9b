package transport

import (
	"fmt"
	"io"
	"net/http"
)

// A Response is an immutable HTTP response.
//
// The zero value is a bodyless 200 response with no headers.
type Response struct {
	status int
	header http.Header
	body   io.Reader
}

// New constructs a bodyless 200 Response with no headers.
func New() Response {
	return Response{status: http.StatusOK, header: make(http.Header)}
}

// Status returns the status code of r.
func (r Response) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Header returns a copy of the headers of r.
func (r Response) Header() http.Header {
	if r.header == nil {
		return make(http.Header)
	}
	return r.header.Clone()
}

// Body returns the body of r, or nil if r has none.
func (r Response) Body() io.Reader { return r.body }

// WithStatus returns a copy of r with the status code.
func (r Response) WithStatus(code int) Response {
	r.status = code
	return r
}

// WithBody returns a copy of r with the body.
func (r Response) WithBody(body io.Reader) Response {
	r.body = body
	return r
}

// WithHeader returns a copy of r with value replacing all values of name.
func (r Response) WithHeader(name, value string) Response {
	r.header = r.Header()
	r.header.Set(name, value)
	return r
}

// WithAddedHeader returns a copy of r with value appended to the values of name.
func (r Response) WithAddedHeader(name, value string) Response {
	r.header = r.Header()
	r.header.Add(name, value)
	return r
}

// WithoutHeader returns a copy of r without any values for name.
func (r Response) WithoutHeader(name string) Response {
	r.header = r.Header()
	r.header.Del(name)
	return r
}

// Write sends r through w: headers, then status, then body.
//
// Headers are added to any w already holds.
// If the body is an io.Closer, Write closes it.
func (r Response) Write(w http.ResponseWriter) error {
	dst := w.Header()
	for name, vals := range r.header {
		dst[name] = append(dst[name], vals...)
	}

	w.WriteHeader(r.Status())
	if r.body == nil {
		return nil
	}

	if c, ok := r.body.(io.Closer); ok {
		defer c.Close()
	}

	if _, err := io.Copy(w, r.body); err != nil {
		return fmt.Errorf("could not write body: %w", err)
	}

	return nil
}
