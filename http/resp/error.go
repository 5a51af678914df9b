package resp

import "errors"

var (
	ErrBadConfig   = errors.New("bad config")
	ErrConsumed    = errors.New("response already consumed")
	ErrDone        = errors.New("request ctx done")
	ErrInvalid     = errors.New("invalid")
	ErrMissingData = errors.New("missing data")
	ErrNotFound    = errors.New("not found")
)
