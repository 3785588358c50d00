package marketplace

import (
	"github.com/viant/afs"
	"github.com/viant/marketplace/connection"
)

// Option represents option
type Option func(c *Client)

// WithEndpoint sets marketplace endpoint, an empty endpoint Prefix keeps the prefix set by WithPrefix
func WithEndpoint(endpoint Endpoint) Option {
	return func(c *Client) {
		if endpoint.Prefix == "" {
			endpoint.Prefix = c.endpoint.Prefix
		}
		c.endpoint = endpoint
	}
}

// WithPrefix sets API path prefix, i.e. /marketplace
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.endpoint.Prefix = prefix
	}
}

// WithConnection sets a custom fetcher, credentials passed to New are ignored
func WithConnection(conn Fetcher) Option {
	return func(c *Client) {
		c.conn = conn
	}
}

// WithConnectionOptions sets options for the default connection
func WithConnectionOptions(options ...connection.Option) Option {
	return func(c *Client) {
		c.connOptions = append(c.connOptions, options...)
	}
}

// WithFileSystem sets file system used to read screenshots
func WithFileSystem(fs afs.Service) Option {
	return func(c *Client) {
		c.fs = fs
	}
}
