package transport

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
)

const (
	EncodingBrotli = "br"
	EncodingGzip   = "gzip"
)

// supported lists the content encodings Encode applies, in order of preference.
var supported = []string{EncodingBrotli, EncodingGzip}

// Encode compresses the body of res with the most preferred encoding acceptEncoding allows.
//
// Responses without a body, those already encoded, and those where acceptEncoding allows
// no supported encoding return unchanged.
func Encode(res Response, acceptEncoding string) (Response, error) {
	if res.body == nil || res.header.Get("Content-Encoding") != "" {
		return res, nil
	}

	enc := Negotiate(acceptEncoding)
	if enc == "" {
		return res, nil
	}

	buf := new(bytes.Buffer)
	var w io.WriteCloser
	switch enc {
	case EncodingBrotli:
		w = brotli.NewWriter(buf)
	case EncodingGzip:
		w = gzip.NewWriter(buf)
	}

	if _, err := io.Copy(w, res.body); err != nil {
		return res, fmt.Errorf("could not %s encode body: %w", enc, err)
	}

	if err := w.Close(); err != nil {
		return res, fmt.Errorf("could not %s encode body: %w", enc, err)
	}

	if c, ok := res.body.(io.Closer); ok {
		c.Close()
	}

	return res.
		WithBody(buf).
		WithoutHeader("Content-Length").
		WithHeader("Content-Encoding", enc).
		WithAddedHeader("Vary", "Accept-Encoding"), nil
}

// Negotiate picks the supported content encoding acceptEncoding prefers,
// or "" if none is acceptable.
//
// Ties on quality go to the order of preference of supported.
func Negotiate(acceptEncoding string) string {
	weights := make(map[string]float64)
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		q := 1.0
		if k, v, ok := strings.Cut(strings.TrimSpace(params), "="); ok && strings.TrimSpace(k) == "q" {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			q = parsed
		}

		weights[name] = q
	}

	var (
		best  string
		bestQ float64
	)
	for _, enc := range supported {
		q, ok := weights[enc]
		if !ok {
			q, ok = weights["*"]
		}

		if ok && q > bestQ {
			best, bestQ = enc, q
		}
	}

	return best
}
