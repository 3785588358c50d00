package transport

import (
	"net/http"
)

type Option func(*RoundTripper)

// WithTransport sets the inner transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		if transport != nil {
			t.transport = transport
		}
	}
}
