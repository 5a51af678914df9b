package cookie

import "errors"

var (
	ErrInvalid = errors.New("invalid cookie")
	ErrNoKey   = errors.New("no hash key")
	ErrSigned  = errors.New("cannot verify signed cookie")
)
