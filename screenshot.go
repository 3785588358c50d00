package marketplace

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/viant/marketplace/connection"
)

const defaultScreenshotType = "image/jpeg"

// ScreenshotPayload represents create_screenshot request body
type ScreenshotPayload struct {
	Position int            `json:"position"`
	File     ScreenshotFile `json:"file"`
}

// ScreenshotFile carries base64 encoded image data with its MIME type
type ScreenshotFile struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// NewScreenshotPayload encodes data, the MIME type is guessed from name.
func NewScreenshotPayload(name string, data []byte, position int) *ScreenshotPayload {
	return &ScreenshotPayload{
		Position: position,
		File: ScreenshotFile{
			Type: MimeType(name),
			Data: base64.StdEncoding.EncodeToString(data),
		},
	}
}

// MimeType guesses MIME type from file extension, image/jpeg when unknown.
func MimeType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return defaultScreenshotType
	}
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return defaultScreenshotType
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mediaType
	}
	return mimeType
}

// CreateScreenshot reads the file at location fully and uploads it as a screenshot
// ordered by position (201 if successful).
func (c *Client) CreateScreenshot(ctx context.Context, appID, location string, position int) (*connection.Response, error) {
	data, err := c.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot %v: %w", location, err)
	}
	return c.CreateScreenshotData(ctx, appID, location, data, position)
}

// CreateScreenshotData uploads in-memory screenshot data, name is used to guess the MIME type.
func (c *Client) CreateScreenshotData(ctx context.Context, appID, name string, data []byte, position int) (*connection.Response, error) {
	return c.fetch(ctx, http.MethodPost, URLCreateScreenshot, NewScreenshotPayload(name, data, position), appID)
}
