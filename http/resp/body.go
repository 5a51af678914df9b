package resp

import (
	"bytes"
	"fmt"
	"io"
)

// A Body is the content of a Response.
//
// Reading a Body to its end does not spend it: Rewind returns it to the start.
type Body struct {
	r    rewinder
	size int64
}

type rewinder interface {
	io.Reader
	Rewind() error
}

// NewBody constructs a *Body of known size holding p.
func NewBody(p []byte) *Body {
	return &Body{r: seeker{bytes.NewReader(p)}, size: int64(len(p))}
}

// NewStreamBody constructs a *Body reading from r.
//
// The size is known when r reports it through Size() int64 or Len() int.
// When r cannot seek, everything read from r is buffered so the *Body can rewind.
// A nil r constructs an empty *Body.
func NewStreamBody(r io.Reader) *Body {
	if r == nil {
		return NewBody(nil)
	}

	size := int64(-1)
	switch s := r.(type) {
	case interface{ Size() int64 }:
		size = s.Size()
	case interface{ Len() int }:
		size = int64(s.Len())
	}

	if rs, ok := r.(io.ReadSeeker); ok {
		return &Body{r: seeker{rs}, size: size}
	}

	return &Body{r: &buffered{src: r}, size: size}
}

// Read reads from the current position of b.
func (b *Body) Read(p []byte) (int, error) { return b.r.Read(p) }

// Rewind returns b to its start.
func (b *Body) Rewind() error {
	if err := b.r.Rewind(); err != nil {
		return fmt.Errorf("could not rewind body: %w", err)
	}
	return nil
}

// Size returns the size of b in bytes, reporting false when unknown.
func (b *Body) Size() (int64, bool) { return b.size, b.size >= 0 }

// Empty reports whether b is known to hold nothing.
func (b *Body) Empty() bool { return b.size == 0 }

// String reads the whole of b, rewinding it before and after.
func (b *Body) String() (string, error) {
	if err := b.Rewind(); err != nil {
		return "", err
	}

	content, err := io.ReadAll(b.r)
	if err != nil {
		return "", fmt.Errorf("could not read body: %w", err)
	}

	if err := b.Rewind(); err != nil {
		return "", err
	}

	return string(content), nil
}

// Close closes the underlying reader, if it can be closed.
func (b *Body) Close() error {
	var src any
	switch r := b.r.(type) {
	case seeker:
		src = r.ReadSeeker
	case *buffered:
		src = r.src
	}

	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

type seeker struct{ io.ReadSeeker }

func (s seeker) Rewind() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

// buffered tees everything read from src into buf,
// replaying buf after a Rewind before reading further from src.
type buffered struct {
	src io.Reader
	buf []byte
	pos int
	eof bool
}

func (b *buffered) Read(p []byte) (int, error) {
	if b.pos < len(b.buf) {
		n := copy(p, b.buf[b.pos:])
		b.pos += n
		return n, nil
	}

	if b.eof {
		return 0, io.EOF
	}

	n, err := b.src.Read(p)
	b.buf = append(b.buf, p[:n]...)
	b.pos += n
	if err == io.EOF {
		b.eof = true
	}

	return n, err
}

func (b *buffered) Rewind() error {
	b.pos = 0
	return nil
}
