package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/marketplace/auth"
	"github.com/viant/marketplace/auth/transport"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "marketplace-go/0.1"

	jsonContentType = "application/json"
	formContentType = "application/x-www-form-urlencoded"
)

// Connection sends OAuth signed requests.
type Connection struct {
	credentials   auth.Credentials
	signerOptions []auth.SignerOption
	transport     http.RoundTripper
	timeout       time.Duration
	userAgent     string
	logger        logrus.FieldLogger
	http          *http.Client
}

// New creates a connection for the consumer credentials.
func New(credentials auth.Credentials, options ...Option) (*Connection, error) {
	ret := &Connection{
		credentials: credentials,
		transport:   http.DefaultTransport,
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range options {
		opt(ret)
	}
	signer := auth.NewSigner(credentials, ret.signerOptions...)
	roundTripper, err := transport.New(signer, transport.WithTransport(ret.transport))
	if err != nil {
		return nil, err
	}
	ret.http = &http.Client{Transport: roundTripper, Timeout: ret.timeout}
	return ret, nil
}

// Fetch sends a signed request and returns status code and body. A nil payload
// sends no body, url.Values are form encoded, []byte and json.RawMessage are
// sent as is, any other value is JSON encoded.
func (c *Connection) Fetch(ctx context.Context, method, URL string, payload any) (*Response, error) {
	body, contentType, err := encode(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s payload: %w", method, URL, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, URL, err)
	}
	req.Header.Set("Accept", jsonContentType)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var signingErr *auth.SigningError
		if errors.As(err, &signingErr) {
			return nil, signingErr
		}
		c.logger.WithFields(logrus.Fields{"method": method, "url": URL}).WithError(err).Debug("request failed")
		return nil, &TransportError{Method: method, URL: URL, Err: unwrapURLError(err)}
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: URL, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"url":     URL,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).String(),
	}).Debug("fetched")
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func encode(payload any) (io.Reader, string, error) {
	switch actual := payload.(type) {
	case nil:
		return nil, "", nil
	case url.Values:
		return strings.NewReader(actual.Encode()), formContentType, nil
	case json.RawMessage:
		return bytes.NewReader(actual), jsonContentType, nil
	case []byte:
		return bytes.NewReader(actual), jsonContentType, nil
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), jsonContentType, nil
	}
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
