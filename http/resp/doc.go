/*
Package resp builds and writes responses to HTTP requests.

# Response

A [Response] accumulates everything a handler decides about its response:
status code, headers, cookies, content, and where to redirect.
Nothing reaches the client until [Response.Build] produces a [transport.Response].

	res := resp.New()
	res.SetContentString("hello")
	res.SetContentType("text/plain")
	res.SetMaxAge(60)

	t, err := res.Build()

A handler composed of others gives each a Response of its own,
then folds each into its own with [Response.MergeInto].

# Responder

A [Responder] holds application-wide configuration for responding
and applies [Fn] functional options to the Response of a request:

	d := resp.NewResponder(resp.WithRootUrl("https://example.com"))
	err := d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(user))

The forms of response a Responder writes are:
  - Json
  - Redirect
  - Raw
  - Err

[transport.Response]: https://pkg.go.dev/github.com/xy-planning-network/switchback/http/transport#Response
*/
package resp
