package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/resp"
)

// RequestIDHeader names the header carrying the request ID.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under switchback.RequestIDKey.
//
// The uuid is also set as the X-Request-Id header of the request,
// and of the *resp.Response InjectResponse stores, if there is one.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			r = r.Clone(context.WithValue(r.Context(), switchback.RequestIDKey, id))
			r.Header.Set(RequestIDHeader, id)

			if rr, ok := resp.FromContext(r.Context()); ok {
				_ = rr.SetHeader(RequestIDHeader, id)
			}

			h.ServeHTTP(w, r)
		})
	}
}
