/*
Package logger provides logging functionality to a switchback app by defining the required behavior in [Logger]
and providing an implementation of it with [SwitchbackLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
[LogLevel] represents those levels.
A [SwitchbackLogger] initialized with [LogLevelWarn]
only emits messages from [*SwitchbackLogger.Warn], [*SwitchbackLogger.Error], and [*SwitchbackLogger.Fatal].

Log messages emitted by [SwitchbackLogger] are composed of:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [WARN] resp/responder.go:43 'could not encode body' log_context: {"status":500}

The log context is a JSON-encoded [*LogContext], carrying the request,
the status of the response being built, and anything else worth recording.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger],
which ships errors found in a [LogContext] to Sentry.
*/
package logger
