package connection

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Response represents a marketplace response
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the body into dest
func (r *Response) JSON(dest any) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Get returns the value at gjson path, i.e. "id" or "validation.messages.0"
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func (r *Response) String() string {
	return string(r.Body)
}
