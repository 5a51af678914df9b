package middleware

import (
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// LogMaskVal replaces the values of query parameters LogRequest scrubs.
const LogMaskVal = "xxxxxxx"

// maskedParams are the query parameters LogRequest scrubs.
var maskedParams = []string{"password", "token"}

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger, once the handler has responded.
//
// The status code written, the number of bytes written, and the duration
// accompany the message as a logger.LogContext.
//
// LogRequest scrubs the values for the following keys:
// - password
// - token
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			strs := []string{r.Method, maskedURI(r)}
			if ip, ok := r.Context().Value(switchback.IpAddrKey).(string); ok && ip != "" {
				strs = append([]string{ip}, strs...)
			}

			data := map[string]any{
				"duration": m.Duration.String(),
				"written":  m.Written,
			}

			if id, ok := r.Context().Value(switchback.RequestIDKey).(string); ok {
				data["id"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data, Status: m.Code})
		})
	}
}

// maskedURI renders the path and query of r, scrubbing maskedParams.
func maskedURI(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	for _, key := range maskedParams {
		if q.Has(key) {
			q.Set(key, LogMaskVal)
		}
	}

	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	return uri
}
