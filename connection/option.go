package connection

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/marketplace/auth"
)

// Option represents option
type Option func(c *Connection)

// WithTransport sets the inner (unsigned) transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Connection) {
		c.transport = transport
	}
}

// WithTimeout sets per request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Connection) {
		c.timeout = timeout
	}
}

// WithSignatureMethod sets OAuth signature method
func WithSignatureMethod(method auth.SignatureMethod) Option {
	return func(c *Connection) {
		c.signerOptions = append(c.signerOptions, auth.WithSignatureMethod(method))
	}
}

// WithSignerOptions appends signer options
func WithSignerOptions(options ...auth.SignerOption) Option {
	return func(c *Connection) {
		c.signerOptions = append(c.signerOptions, options...)
	}
}

// WithLogger sets logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Connection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets User-Agent header
func WithUserAgent(userAgent string) Option {
	return func(c *Connection) {
		c.userAgent = userAgent
	}
}
