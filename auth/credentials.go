package auth

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials is reported when the consumer key or secret is empty.
var ErrMissingCredentials = errors.New("missing consumer key or secret")

// Credentials identifies an OAuth consumer.
type Credentials struct {
	ConsumerKey    string `json:"consumerKey" yaml:"consumerKey"`
	ConsumerSecret string `json:"consumerSecret" yaml:"consumerSecret"`
}

// IsEmpty returns true when neither key nor secret is set.
func (c Credentials) IsEmpty() bool {
	return c.ConsumerKey == "" && c.ConsumerSecret == ""
}

// Validate checks both key and secret are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ConsumerKey) == "" || strings.TrimSpace(c.ConsumerSecret) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// SigningError is returned when a request could not be signed.
type SigningError struct {
	Method string
	URL    string
	Err    error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// NewCredentials creates consumer credentials.
func NewCredentials(key, secret string) Credentials {
	return Credentials{ConsumerKey: key, ConsumerSecret: secret}
}
