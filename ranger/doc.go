/*
Package ranger initializes and manages a switchback app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New], optionally passing [RangerOption]s
to replace the components New otherwise configures from environment variables.

[*Ranger.Guide] begins a switchback app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost][DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the switchback web server.

Upon calling [*Ranger.Guide], all routes configured up to that point are now active.
Stop that web server with [*Ranger.Shutdown],
call [*Ranger.Cancel],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a switchback app through environment variables
and by passing [RangerOption]s to [New].

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; replaces HOST & PORT
  - CONTACT_US_EMAIL: the email address end users can contact XYPN at; default: hello@xyplanningnetwork.com
  - COOKIE_BLOCK_KEY: a hex-encoded key for encrypting signed cookies; cf. [encoding/hex]
  - COOKIE_HASH_KEY: a hex-encoded key for authenticating signed cookies; cf. [encoding/hex]
  - ENVIRONMENT: the environment the application is running in; cf. [switchback.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAINTENANCE_MODE: when "true", every request is answered with 503 Service Unavailable
  - PORT: the port the application should listen on; default: :3000
  - RESPONSE_COMPRESSION: whether response bodies are compressed when the client accepts it; default: true
  - SENTRY_DSN: the DSN errors and panics are reported to outside of development
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
*/
package ranger
