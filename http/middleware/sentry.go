package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/switchback"
)

// ReportPanic wraps handlers in sentryhttp in order to recover and report panics
// when env reports panics.
//
// Otherwise, NoopAdapter returns and panics surface as they would without this middleware.
func ReportPanic(env switchback.Environment) Adapter {
	if !env.ReportsPanics() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(handler http.Handler) http.Handler {
		return sh.Handle(handler)
	}
}
