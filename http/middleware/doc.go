/*
The middleware package defines what a middleware is in switchback and a set of basic middlewares.

The available middlewares are:
- CacheControl
- CORS
- ForceHTTPS
- InjectIPAddress
- InjectResponse
- LogRequest
- RateLimit
- ReportPanic
- RequestID

InjectResponse stores a fresh *resp.Response in the request context.
Middlewares after it in the chain, and the handler at its end,
shape the response through that *resp.Response.
Whatever is left unwritten once the handler returns, InjectResponse writes.

Due to the amount of configuration required, middleware does not provide a default middleware chain
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.InjectResponse(responder),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs, responder),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.LogRequest(log),
	}
*/
package middleware
