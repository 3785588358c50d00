// Package auth implements two-legged OAuth 1.0a request signing (RFC 5849)
// used to authenticate calls against the marketplace API.
//
// A Signer holds the consumer credentials and a SignatureMethod and adds an
// `Authorization: OAuth ...` header to each request with a fresh nonce and
// timestamp. Verify performs the server side check and is used by the mock
// marketplace in tests.
package auth
