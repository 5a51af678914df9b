package ranger

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@xyplanningnetwork.com"
	contactUsErr     = "Uh oh! We've run into an issue. Please contact us at %s."

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Response defaults
	CookieHashKeyEnvVar     = "COOKIE_HASH_KEY"
	CookieBlockKeyEnvVar    = "COOKIE_BLOCK_KEY"
	compressionEnvVar       = "RESPONSE_COMPRESSION"
	defaultCompression      = true
	maintenanceRetryAfter   = "600"
	maintenanceModeEnvVar   = "MAINTENANCE_MODE"
	defaultMaintenanceMode  = false
	defaultShutdownDuration = 5 * time.Second

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

// defaultOpts are the RangerOptions New applies before those passed into it.
func defaultOpts() []RangerOption {
	return []RangerOption{
		WithEnv(environmentEnvVar),
		WithContext(context.Background()),
	}
}

// defaultURL builds the base URL the application runs on
// from BASE_URL or, when unset, HOST and PORT.
func defaultURL() *url.URL {
	host := switchback.EnvVarOrString(hostEnvVar, DefaultHost)
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return switchback.EnvVarOrURL(BaseURLEnvVar, "http://"+host+port)
}

// defaultLogger constructs a logger.Logger configured for use in the application.
func defaultLogger(env switchback.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(envVarOrLogLevel(logLevelEnvVar, defaultLogLvl)),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultSigner constructs a *cookie.Signer from COOKIE_HASH_KEY and COOKIE_BLOCK_KEY.
//
// Both env vars must be hex encoded; cf. [encoding/hex].
// Without a COOKIE_HASH_KEY, no *cookie.Signer is configured.
func defaultSigner() (*cookie.Signer, error) {
	hashKey := switchback.EnvVarOrHex(CookieHashKeyEnvVar)
	if hashKey == nil {
		return nil, nil
	}

	s, err := cookie.NewSigner(hashKey, switchback.EnvVarOrHex(CookieBlockKeyEnvVar))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	return s, nil
}

// defaultResponder configures the [*resp.Responder] to be used by router.Actions.
func defaultResponder(l logger.Logger, u *url.URL, s *cookie.Signer) *resp.Responder {
	contact := switchback.EnvVarOrString(ContactUsEnvVar, defaultContactUs)
	args := []resp.ResponderOptFn{
		resp.WithCompression(switchback.EnvVarOrBool(compressionEnvVar, defaultCompression)),
		resp.WithContactErrMsg(fmt.Sprintf(contactUsErr, contact)),
		resp.WithLogger(l),
		resp.WithRootUrl(u.String()),
	}

	if s != nil {
		args = append(args, resp.WithCookieSigner(s))
	}

	return resp.NewResponder(args...)
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
//
// Every request passes through this middleware stack:
//   - middleware.InjectIPAddress
//   - middleware.RateLimit
//   - middleware.ForceHTTPS
//   - middleware.RequestID
//   - middleware.LogRequest
//   - middleware.CORS
func defaultRouter(
	env switchback.Environment,
	baseURL *url.URL,
	d *resp.Responder,
	l logger.Logger,
) *router.Router {
	logReq := middleware.LogRequest(l)
	route := router.New(env, d, logReq)
	route.OnEveryRequest(
		middleware.InjectIPAddress(),
		middleware.RateLimit(middleware.NewVisitors(), d),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		logReq,
		middleware.CORS(baseURL.Scheme+"://"+baseURL.Host),
	)

	route.HandleNotFound(func(r *http.Request, res *resp.Response) error {
		if strings.Contains(r.Header.Get("Accept"), "text/html") && r.URL.Path != baseURL.Path {
			u := *baseURL
			res.SetRedirect(&u, resp.DefaultRedirectCode)
			return nil
		}

		res.SetStatusCode(http.StatusNotFound)
		return nil
	})

	if switchback.EnvVarOrBool(maintenanceModeEnvVar, defaultMaintenanceMode) {
		l.Warn("maintenance mode enabled, every request is answered with 503", nil)
		route.CatchAll(MaintModeAction(switchback.EnvVarOrString(ContactUsEnvVar, defaultContactUs)))
	}

	return route
}

// MaintModeAction responds with http.StatusServiceUnavailable,
// asking the client to retry after ten minutes.
func MaintModeAction(contact string) router.Action {
	return func(r *http.Request, res *resp.Response) error {
		res.SetStatusCode(http.StatusServiceUnavailable)
		if err := res.SetHeader("Retry-After", maintenanceRetryAfter); err != nil {
			return err
		}

		if !strings.Contains(r.Header.Get("Accept"), "text/html") {
			return nil
		}

		res.SetContentString(fmt.Sprintf("Down for maintenance. Questions? Contact %s.\n", contact))
		return res.SetContentType("text/plain; charset=utf-8")
	}
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
