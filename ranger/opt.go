package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithEnv is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Ranger
// is updated only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithContext exposes the provided context.Context to the switchback app.
// Requests the web server handles derive their context from it.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, errors.New("nil context")
		}

		rng.ctx = ctx
		rng.debug(fmt.Sprintf("using context %T", ctx))

		return nil, nil
	}
}

// WithCookieSigner exposes the provided *cookie.Signer to the default *resp.Responder.
func WithCookieSigner(s *cookie.Signer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.signer = s
		rng.debug("using cookie signer")

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the environment variable envVar names a valid Environment.
// WithEnv then exposes that Environment through Ranger.Env.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := switchback.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = switchback.EnvVarOrEnv(envVar, switchback.Development)
		}

		rng.env = e
		rng.debug(fmt.Sprintf("using env %s", e))

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the switchback app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		rng.debug(fmt.Sprintf("using logger %T", l))

		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the switchback app.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Responder = d
			rng.debug("using responder")

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the switchback app.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			if rng.srv == nil {
				rng.srv = defaultServer(rng.ctx)
			}

			rng.Router = r
			rng.srv.Handler = r
			rng.debug(fmt.Sprintf("using router %T", r))

			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the switchback app.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		old := rng.srv
		rng.srv = s

		if old != nil {
			rng.srv.Handler = old.Handler
		}

		rng.debug(fmt.Sprintf("using server listening at %s", s.Addr))

		return nil, nil
	}
}
