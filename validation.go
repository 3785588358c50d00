package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/viant/marketplace/connection"
)

// ValidationState represents manifest validation progress
type ValidationState int

const (
	ValidationPending ValidationState = iota
	ValidationValid
	ValidationInvalid
)

func (s ValidationState) String() string {
	switch s {
	case ValidationValid:
		return "valid"
	case ValidationInvalid:
		return "invalid"
	}
	return "pending"
}

// ValidationResult represents a manifest validation poll outcome
type ValidationResult struct {
	ID         string          `json:"id"`
	Processed  bool            `json:"processed"`
	Valid      bool            `json:"valid"`
	Validation json.RawMessage `json:"validation,omitempty"`
}

// State returns Pending until processed, then Valid or Invalid.
func (r *ValidationResult) State() ValidationState {
	switch {
	case !r.Processed:
		return ValidationPending
	case r.Valid:
		return ValidationValid
	}
	return ValidationInvalid
}

// IsManifestValid polls validation once. The result state is Pending when the
// manifest has not been processed yet, Valid, or Invalid with Validation holding
// the error payload. A non-200 poll returns UnexpectedStatusError.
func (c *Client) IsManifestValid(ctx context.Context, validationID string) (*ValidationResult, error) {
	resp, err := c.ManifestValidationResult(ctx, validationID)
	if err != nil {
		return nil, err
	}
	if err = Expect(resp, "get_manifest_validation_result", validationID, http.StatusOK); err != nil {
		return nil, err
	}
	return ParseValidationResult(validationID, resp)
}

// ParseValidationResult decodes a validation result body.
func ParseValidationResult(validationID string, resp *connection.Response) (*ValidationResult, error) {
	if !gjson.ValidBytes(resp.Body) {
		return nil, fmt.Errorf("validation %v: invalid response body: %s", validationID, resp.Body)
	}
	ret := &ValidationResult{
		ID:        validationID,
		Processed: resp.Get("processed").Bool(),
		Valid:     resp.Get("valid").Bool(),
	}
	if validation := resp.Get("validation"); validation.Exists() {
		ret.Validation = json.RawMessage(validation.Raw)
	}
	return ret, nil
}

// ResourceID extracts the "id" field of a create style response.
func ResourceID(resp *connection.Response) (string, error) {
	id := resp.Get("id")
	if !id.Exists() || id.String() == "" {
		return "", fmt.Errorf("response has no id: %s", resp.Body)
	}
	return id.String(), nil
}
