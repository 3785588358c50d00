package marketplace

import (
	"context"
	"fmt"
	"net/http"

	"github.com/viant/afs"
	"github.com/viant/marketplace/auth"
	"github.com/viant/marketplace/connection"
)

// Fetcher executes a single signed call.
type Fetcher interface {
	Fetch(ctx context.Context, method, URL string, payload any) (*connection.Response, error)
}

// Client maps marketplace operations to signed API calls.
type Client struct {
	endpoint    Endpoint
	conn        Fetcher
	connOptions []connection.Option
	fs          afs.Service
}

// New creates a marketplace client
func New(credentials auth.Credentials, options ...Option) (*Client, error) {
	ret := &Client{endpoint: DefaultEndpoint()}
	for _, opt := range options {
		opt(ret)
	}
	ret.endpoint.init()
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.conn == nil {
		conn, err := connection.New(credentials, ret.connOptions...)
		if err != nil {
			return nil, err
		}
		ret.conn = conn
	}
	return ret, nil
}

// Endpoint returns client endpoint
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// URL returns the full API URL for a template key
func (c *Client) URL(key string, args ...any) (string, error) {
	return c.endpoint.URL(key, args...)
}

// ValidateManifest orders manifest validation, the response body carries the validation id.
func (c *Client) ValidateManifest(ctx context.Context, manifestURL string) (*connection.Response, error) {
	if manifestURL == "" {
		return nil, &ContractViolationError{Operation: "validate_manifest", Fields: []string{"manifest"}}
	}
	return c.fetch(ctx, http.MethodPost, URLValidate, map[string]string{"manifest": manifestURL})
}

// ManifestValidationResult returns validation status (200) with processed, valid and validation fields.
func (c *Client) ManifestValidationResult(ctx context.Context, validationID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodGet, URLValidationResult, nil, validationID)
}

// Create issues app creation from a valid manifest validation, 201 with the new app id.
func (c *Client) Create(ctx context.Context, validationID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodPost, URLCreate, map[string]string{"manifest": validationID})
}

// ListWebapps lists apps owned by the user.
func (c *Client) ListWebapps(ctx context.Context) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodGet, URLCreate, nil)
}

// Update updates app with data (202 if successful), data is validated before any request is made.
func (c *Client) Update(ctx context.Context, appID string, data *AppData) (*connection.Response, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, http.MethodPut, URLApp, data, appID)
}

// Status returns app details (200).
func (c *Client) Status(ctx context.Context, appID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodGet, URLApp, nil, appID)
}

// Delete deletes app (204).
func (c *Client) Delete(ctx context.Context, appID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodDelete, URLApp, nil, appID)
}

// Screenshot returns screenshot or video details (200).
func (c *Client) Screenshot(ctx context.Context, screenshotID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodGet, URLScreenshot, nil, screenshotID)
}

// DeleteScreenshot deletes screenshot (204).
func (c *Client) DeleteScreenshot(ctx context.Context, screenshotID string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodDelete, URLScreenshot, nil, screenshotID)
}

// AddContentRatings attaches content ratings using submission id and security code (201).
func (c *Client) AddContentRatings(ctx context.Context, appID, submissionID, securityCode string) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodPost, URLContentRatings, map[string]string{
		"submission_id": submissionID,
		"security_code": securityCode,
	}, appID)
}

// Categories lists marketplace categories (200).
func (c *Client) Categories(ctx context.Context) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodGet, URLCategories, nil)
}

// AppState changes app status and/or disabled_by_user flag, transitions are enforced by the marketplace:
// incomplete -> pending (adds app to review queue), waiting -> public.
func (c *Client) AppState(ctx context.Context, appID string, change *StateChange) (*connection.Response, error) {
	if err := change.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, http.MethodPatch, URLEnable, change, appID)
}

func (c *Client) fetch(ctx context.Context, method, key string, payload any, args ...any) (*connection.Response, error) {
	URL, err := c.endpoint.URL(key, args...)
	if err != nil {
		return nil, err
	}
	resp, err := c.conn.Fetch(ctx, method, URL, payload)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", key, err)
	}
	return resp, nil
}
