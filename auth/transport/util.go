package transport

import (
	"bytes"
	"io"
	"net/http"
)

// clone copies r for signing, r.Body is never replaced.
func clone(r *http.Request) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	if r.Body == nil || r.Body == http.NoBody {
		return cloned, nil
	}
	if r.GetBody != nil {
		body, err := r.GetBody()
		if err != nil {
			return nil, err
		}
		_ = r.Body.Close()
		cloned.Body = body
		return cloned, nil
	}
	buf, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	cloned.Body = io.NopCloser(bytes.NewReader(buf))
	cloned.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	cloned.ContentLength = int64(len(buf))
	return cloned, nil
}
