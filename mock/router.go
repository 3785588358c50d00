package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/viant/marketplace/auth"
)

const apiPath = "/api/v1"

// Handler routes signed marketplace API requests.
type Handler struct {
	// Marketplace holds state and endpoint handlers.
	Marketplace *Marketplace
}

// ServeHTTP verifies the OAuth signature and dispatches by resource path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m := h.Marketplace
	if err := auth.Verify(r, m.Credentials); err != nil {
		w.Header().Set("WWW-Authenticate", `OAuth realm="marketplace"`)
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": err.Error()})
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, m.Prefix+apiPath)
	m.record(Call{Method: r.Method, Path: path, Body: string(data)})
	if status, ok := m.failure(r.Method, path); ok {
		writeJSON(w, status, map[string]any{"detail": "forced failure"})
		return
	}
	body := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "malformed JSON: " + err.Error()})
			return
		}
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] != "apps" {
		http.NotFound(w, r)
		return
	}
	switch resource := segments[1]; {
	case resource == "validation" && len(segments) == 2 && r.Method == http.MethodPost:
		m.validate(w, body)
	case resource == "validation" && len(segments) == 3 && r.Method == http.MethodGet:
		m.validationResult(w, segments[2])
	case resource == "app" && len(segments) == 2 && r.Method == http.MethodPost:
		m.create(w, body)
	case resource == "app" && len(segments) == 2 && r.Method == http.MethodGet:
		m.list(w)
	case resource == "app" && len(segments) == 3:
		if id, ok := numericID(w, segments[2]); ok {
			m.app(w, r.Method, id, body)
		}
	case resource == "app" && len(segments) == 4 && segments[3] == "preview" && r.Method == http.MethodPost:
		if id, ok := numericID(w, segments[2]); ok {
			m.createPreview(w, id, body)
		}
	case resource == "app" && len(segments) == 4 && segments[3] == "content_ratings" && r.Method == http.MethodPost:
		if id, ok := numericID(w, segments[2]); ok {
			m.contentRatings(w, id, body)
		}
	case resource == "preview" && len(segments) == 3 && (r.Method == http.MethodGet || r.Method == http.MethodDelete):
		if id, ok := numericID(w, segments[2]); ok {
			m.preview(w, r.Method, id)
		}
	case resource == "category" && len(segments) == 2 && r.Method == http.MethodGet:
		m.categories(w)
	case resource == "status" && len(segments) == 3 && r.Method == http.MethodPatch:
		if id, ok := numericID(w, segments[2]); ok {
			m.status(w, id, body)
		}
	default:
		http.NotFound(w, r)
	}
}

func numericID(w http.ResponseWriter, value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return 0, false
	}
	return id, true
}

// Server is a running test marketplace.
type Server struct {
	*httptest.Server
	Marketplace *Marketplace
}

// NewHTTPTestServer starts a test server for the marketplace.
func NewHTTPTestServer(marketplace *Marketplace) *Server {
	return &Server{
		Server:      httptest.NewServer(&Handler{Marketplace: marketplace}),
		Marketplace: marketplace,
	}
}
