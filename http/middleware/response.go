package middleware

import (
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/switchback/http/resp"
)

// InjectResponse stores a new *resp.Response in the *http.Request.Context,
// making it available to the rest of the chain through resp.FromContext.
//
// Once the handler returns, InjectResponse writes the *resp.Response through d,
// unless something already consumed it or wrote to the http.ResponseWriter directly.
//
// If d is nil, NoopAdapter returns and this middleware does nothing.
func InjectResponse(d *resp.Responder) Adapter {
	if d == nil {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rr, ok := resp.FromContext(r.Context())
			if !ok {
				rr = resp.New()
				r = r.WithContext(resp.NewContext(r.Context(), rr))
			}

			var wrote bool
			tracked := httpsnoop.Wrap(w, httpsnoop.Hooks{
				Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(p []byte) (int, error) {
						wrote = true
						return next(p)
					}
				},
				WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						wrote = true
						next(code)
					}
				},
				ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
					return func(src io.Reader) (int64, error) {
						wrote = true
						return next(src)
					}
				},
			})

			handler.ServeHTTP(tracked, r)

			if wrote || rr.Consumed() {
				return
			}

			_ = d.Write(w, r, rr)
		})
	}
}

// CacheControl marks responses as cacheable by shared caches for maxAge seconds.
//
// The Cache-Control header is set on the *resp.Response InjectResponse stores,
// so handlers can still override it.
// Without one, CacheControl sets the header on the http.ResponseWriter.
func CacheControl(maxAge int) Adapter {
	if maxAge < 0 {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rr, ok := resp.FromContext(r.Context())
			if !ok {
				rr = resp.New()
			}

			if err := rr.SetPublic(); err == nil {
				_ = rr.SetMaxAge(maxAge)
			}

			if !ok {
				w.Header().Set("Cache-Control", rr.Header("Cache-Control"))
			}

			handler.ServeHTTP(w, r)
		})
	}
}
