/*
Package router routes HTTP requests to the Action registered for them.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An [Action] is the function called when a request matches a Route.
Before a request gets to an Action, though,
any middlewares added to the Route are called in the order they appear.

Every request handled by a Router carries a [*resp.Response] in its context,
which middlewares and the Action shape and the Router writes once the Action returns.
An Action composed from others hands each of them a fresh *resp.Response through [Forward],
merging what they set into its own.

It is often the case that many routes for a web server share identical middleware stacks,
which aid in directing, redirecting, or adding contextual information to a request.
It is also often the case that small errors can lead to registering a route incorrectly,
thereby unintentionally exposing a resource or not collecting data necessary for actually handling a request.
Thus, a [Router] provides conveniences for making a single call to register many logically associated Routes.
*/
package router
