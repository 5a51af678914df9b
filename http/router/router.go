package router

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/logger"
)

// An Action handles a request by shaping res.
//
// Whatever res holds once an Action returns without error is written as the response,
// unless the Action consumed res itself, e.g., through a [*resp.Responder].
// An error returned responds through [resp.Responder.Err], keeping any error status code set on res.
type Action func(r *http.Request, res *resp.Response) error

// A Route maps a path and HTTP method to an [Action].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Action      Action
	Middlewares []middleware.Adapter
}

// Router routes requests to the Action of the matching Route.
type Router struct {
	Env           switchback.Environment
	d             *resp.Responder
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment,
// responding through d and logging requests with logReq.
//
// If d is nil, resp.NewResponder configures one.
func New(env switchback.Environment, d *resp.Responder, logReq middleware.Adapter) *Router {
	if d == nil {
		d = resp.NewResponder()
	}

	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, d: d, logReq: logReq, r: mux.NewRouter()}
}

// CatchAll sets up an Action for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(action Action) {
	r.r.PathPrefix("/").Handler(r.chain(action, r.everyReqStack...))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [Action] as the default
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(action Action) {
	r.r.NotFoundHandler = r.chain(action, r.logReq)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append([]middleware.Adapter{}, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)
		r.r.Handle(route.Path, r.chain(route.Action, mws...)).Methods(route.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// StaticFiles serves the files in fsys under prefix,
// marking them cacheable for maxAge seconds.
func (r *Router) StaticFiles(prefix string, fsys fs.FS, maxAge int) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.FS(fsys))),
		middleware.CacheControl(maxAge),
		r.logReq,
	))
}

// SubrouterHost constructs a [Router] that handles requests made to host.
func (r *Router) SubrouterHost(host string) *Router {
	return r.sub(r.r.Host(host).Subrouter())
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return r.sub(r.r.PathPrefix(prefix).Subrouter())
}

func (r *Router) sub(mr *mux.Router) *Router {
	return &Router{
		Env:           r.Env,
		d:             r.d,
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
		logReq:        r.logReq,
		r:             mr,
	}
}

// chain wraps action with the middlewares, after a *resp.Response is injected into the request.
// Panics raised by action are reported when the environment calls for it.
func (r *Router) chain(action Action, mws ...middleware.Adapter) http.Handler {
	mws = append([]middleware.Adapter{middleware.InjectResponse(r.d)}, mws...)
	return middleware.Chain(middleware.ReportPanic(r.Env)(r.serve(action)), mws...)
}

// serve adapts action into an http.Handler.
//
// serve writes the *resp.Response action built unless action consumed it,
// so the middlewares wrapping serve observe the response written.
func (r *Router) serve(action Action) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rr, ok := resp.FromContext(req.Context())
		if !ok {
			rr = resp.New()
			req = req.WithContext(resp.NewContext(req.Context(), rr))
		}

		err := action(req, rr)
		switch {
		case err != nil && rr.Consumed():
			r.d.Logger().Error(err.Error(), &logger.LogContext{Error: err, Request: req})
		case err != nil:
			r.d.Err(w, req, err)
		case !rr.Consumed():
			_ = r.d.Write(w, req, rr)
		}
	})
}

// Forward runs action against a new *resp.Response, merging it into parent when action succeeds.
//
// Use Forward to compose an Action out of others:
// whatever the forwarded action sets overrides what parent holds.
func Forward(r *http.Request, parent *resp.Response, action Action) error {
	child := resp.New()
	if err := action(r.WithContext(resp.NewContext(r.Context(), child)), child); err != nil {
		return err
	}

	_, err := child.MergeInto(parent)
	return err
}
