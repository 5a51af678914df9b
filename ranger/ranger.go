package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// A Ranger manages and exposes all components of a switchback app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx    context.Context
	cancel context.CancelFunc
	env    switchback.Environment
	l      logger.Logger
	signer *cookie.Signer
	srv    *http.Server
	url    *url.URL
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
//
// Whatever no option configured, New configures from environment variables.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Ranger
	// until either (1) user supplied RangerOptions or (2) default RangerOptions
	// configure the *Ranger first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	r.url = defaultURL()
	if r.url == nil {
		return nil, fmt.Errorf("%w: could not parse base URL", ErrBadConfig)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	if r.signer == nil {
		s, err := defaultSigner()
		if err != nil {
			return nil, err
		}
		r.signer = s
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l, r.url, r.signer)
	}

	if r.Router == nil {
		r.Router = defaultRouter(r.env, r.url, r.Responder, r.l)
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}

	if r.srv.Handler == nil {
		r.srv.Handler = r.Router
	}

	r.ctx, r.cancel = context.WithCancel(r.ctx)

	return r, nil
}

// Cancel stops Guide.
func (r *Ranger) Cancel() { r.cancel() }

// Env exposes the Environment the switchback app runs in.
func (r *Ranger) Env() switchback.Environment { return r.env }

// EmitLogger exposes the logger.Logger the switchback app logs through.
func (r *Ranger) EmitLogger() logger.Logger { return r.l }

// URL exposes the base URL the switchback app runs on.
func (r *Ranger) URL() *url.URL {
	u := *r.url
	return &u
}

// Guide begins the web server.
//
// These, and (*Ranger).Cancel, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		r.cancel()
		return err
	case <-r.ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownDuration)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

// debug logs msg when a logger.Logger is already configured.
func (r *Ranger) debug(msg string) {
	if r.l != nil {
		r.l.Debug(msg, nil)
	}
}
