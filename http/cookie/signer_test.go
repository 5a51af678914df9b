package cookie_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/cookie"
)

func TestNewSigner(t *testing.T) {
	s, err := cookie.NewSigner(nil, nil)
	require.ErrorIs(t, err, cookie.ErrNoKey)
	require.Nil(t, s)
}

func TestSignerRoundTrip(t *testing.T) {
	tcs := []struct {
		name     string
		blockKey []byte
	}{
		{"Hash-Only", nil},
		{"Encrypted", bytes.Repeat([]byte("b"), 32)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s, err := cookie.NewSigner(bytes.Repeat([]byte("h"), 32), tc.blockKey)
			require.Nil(t, err)

			c := cookie.New("remember", "user-1")

			// Act
			signed, err := s.Sign(c)

			// Assert
			require.Nil(t, err)
			require.NotEqual(t, c.Value, signed.Value)
			require.Equal(t, c.Name, signed.Name)
			require.Nil(t, signed.Valid())

			// Act
			verified, err := s.Verify(signed)

			// Assert
			require.Nil(t, err)
			require.Equal(t, c, verified)
		})
	}
}

func TestSignerVerifyTampered(t *testing.T) {
	// Arrange
	s, err := cookie.NewSigner(bytes.Repeat([]byte("h"), 32), nil)
	require.Nil(t, err)

	signed, err := s.Sign(cookie.New("remember", "user-1"))
	require.Nil(t, err)

	other, err := cookie.NewSigner(bytes.Repeat([]byte("x"), 32), nil)
	require.Nil(t, err)

	// Act
	_, err = other.Verify(signed)

	// Assert
	require.ErrorIs(t, err, cookie.ErrSigned)

	// Arrange
	signed.Name = "renamed"

	// Act
	_, err = s.Verify(signed)

	// Assert
	require.ErrorIs(t, err, cookie.ErrSigned)
}

func TestSignerBadBlockKey(t *testing.T) {
	s, err := cookie.NewSigner(bytes.Repeat([]byte("h"), 32), []byte("short"))
	require.Nil(t, err)

	_, err = s.Sign(cookie.New("remember", "user-1"))
	require.ErrorIs(t, err, cookie.ErrInvalid)
}
