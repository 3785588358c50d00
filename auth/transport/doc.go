// Package transport implements an http.RoundTripper that signs every outgoing
// request with OAuth 1.0a before handing it to the underlying transport.
//
// The RoundTripper never mutates the caller's request: it clones the request,
// buffers the body so form parameters can take part in the signature, and
// replays it on the inner transport.
package transport
