package marketplace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/marketplace/connection"
)

// UnexpectedStatusError reports a response status other than the documented success code.
type UnexpectedStatusError struct {
	Operation  string
	ID         string
	StatusCode int
	Expected   []int
	Body       string
}

func (e *UnexpectedStatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d, expected %v", e.Operation, e.ID, e.StatusCode, e.Expected)
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 512 {
			body = body[:512] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// ValidationFailedError reports a manifest that was processed and marked invalid.
type ValidationFailedError struct {
	ValidationID string
	ManifestURL  string
	Validation   json.RawMessage
}

func (e *ValidationFailedError) Error() string {
	target := e.ValidationID
	if e.ManifestURL != "" {
		target = fmt.Sprintf("%s (%s)", e.ManifestURL, e.ValidationID)
	}
	return fmt.Sprintf("manifest validation failed %s: %s", target, string(e.Validation))
}

// ContractViolationError reports a call made without its required fields.
type ContractViolationError struct {
	Operation string
	Fields    []string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: missing required field(s): %s", e.Operation, strings.Join(e.Fields, ", "))
}

// Expect returns UnexpectedStatusError unless resp status is one of codes.
func Expect(resp *connection.Response, operation, id string, codes ...int) error {
	if resp == nil {
		return fmt.Errorf("%s %s: response was nil", operation, id)
	}
	for _, code := range codes {
		if resp.StatusCode == code {
			return nil
		}
	}
	return &UnexpectedStatusError{
		Operation:  operation,
		ID:         id,
		StatusCode: resp.StatusCode,
		Expected:   codes,
		Body:       string(resp.Body),
	}
}
