package cookie

import (
	"fmt"

	"github.com/gorilla/securecookie"
)

// A Signer authenticates, and optionally encrypts, Cookie values.
type Signer struct {
	sc *securecookie.SecureCookie
}

// NewSigner constructs a *Signer.
//
// hashKey is required and ought to be 32 or 64 bytes.
// blockKey enables encryption when not nil and must be 16, 24, or 32 bytes.
func NewSigner(hashKey, blockKey []byte) (*Signer, error) {
	if len(hashKey) == 0 {
		return nil, ErrNoKey
	}

	return &Signer{sc: securecookie.New(hashKey, blockKey)}, nil
}

// Sign returns a copy of c with its value encoded.
// The encoding binds the value to the name of c.
func (s *Signer) Sign(c Cookie) (Cookie, error) {
	encoded, err := s.sc.Encode(c.Name, c.Value)
	if err != nil {
		return c, fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	c.Value = encoded
	return c, nil
}

// Verify returns a copy of c with its value decoded.
// If c was not signed by a Signer holding the same keys, ErrSigned returns.
func (s *Signer) Verify(c Cookie) (Cookie, error) {
	var val string
	if err := s.sc.Decode(c.Name, c.Value, &val); err != nil {
		return c, fmt.Errorf("%w %q: %s", ErrSigned, c.Name, err)
	}

	c.Value = val
	return c, nil
}
