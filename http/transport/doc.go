/*
Package transport provides Response, the immutable value written to the wire for an HTTP request.

Every With method returns a modified copy, leaving the receiver untouched:

	res := transport.New().
		WithStatus(http.StatusCreated).
		WithHeader("Content-Type", "text/plain").
		WithBody(strings.NewReader("created"))

	err := res.Write(w)
*/
package transport
