/*
Package cookie provides the Cookie value a response carries to the client through a Set-Cookie header.

A Cookie is a plain value: copying one copies everything it holds,
and methods changing its state, like Expired, return a new Cookie.
Signer protects the value of a Cookie from tampering.
*/
package cookie
