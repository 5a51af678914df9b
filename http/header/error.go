package header

import "errors"

var (
	ErrInvalidName  = errors.New("invalid header field name")
	ErrInvalidValue = errors.New("invalid header field value")
	ErrSetCookie    = errors.New("cannot set Set-Cookie directly, use SetCookie")
)
