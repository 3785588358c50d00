package mock

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/marketplace/auth"
)

// Call records an authenticated request received by the marketplace.
type Call struct {
	Method string
	Path   string
	Body   string
}

// Validation represents a submitted manifest validation
type Validation struct {
	ID       string
	Manifest string
	Polls    int
	Invalid  bool
}

// App represents a created app
type App struct {
	ID             int               `json:"id"`
	Slug           string            `json:"slug"`
	ManifestURL    string            `json:"manifest_url"`
	Status         string            `json:"status"`
	DisabledByUser bool              `json:"disabled_by_user"`
	Data           map[string]any    `json:"data,omitempty"`
	Previews       []int             `json:"previews,omitempty"`
	ContentRatings map[string]string `json:"content_ratings,omitempty"`
}

// Preview represents an uploaded screenshot
type Preview struct {
	ID       int    `json:"id"`
	AppID    int    `json:"app_id"`
	Position int    `json:"position"`
	FileType string `json:"filetype"`
	Size     int    `json:"size"`
}

// Category represents a marketplace category
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Marketplace is an in-memory marketplace API.
type Marketplace struct {
	Credentials auth.Credentials
	// Prefix is the API path prefix, i.e. "/marketplace".
	Prefix string
	// ProcessAfter is the number of polls answered with processed=false.
	ProcessAfter int
	// InvalidManifests lists manifest URLs that fail validation.
	InvalidManifests map[string]bool
	// Failures overrides reply status by "METHOD /apps/..." path.
	Failures   map[string]int
	Categories []Category

	mu            sync.Mutex
	nextAppID     int
	nextPreviewID int
	validations   map[string]*Validation
	apps          map[int]*App
	previews      map[int]*Preview
	calls         []Call
}

// NewMarketplace creates an empty marketplace, app ids start at 100.
func NewMarketplace(credentials auth.Credentials) *Marketplace {
	return &Marketplace{
		Credentials:      credentials,
		InvalidManifests: map[string]bool{},
		Failures:         map[string]int{},
		Categories: []Category{
			{ID: 1, Name: "Games", Slug: "games"},
			{ID: 2, Name: "Utilities", Slug: "utilities"},
			{ID: 3, Name: "Education", Slug: "education"},
		},
		nextAppID:     100,
		nextPreviewID: 1,
		validations:   map[string]*Validation{},
		apps:          map[int]*App{},
		previews:      map[int]*Preview{},
	}
}

// Calls returns recorded calls in arrival order.
func (m *Marketplace) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsMatching returns recorded calls with method and path prefix.
func (m *Marketplace) CallsMatching(method, pathPrefix string) []Call {
	var ret []Call
	for _, call := range m.Calls() {
		if call.Method == method && strings.HasPrefix(call.Path, pathPrefix) {
			ret = append(ret, call)
		}
	}
	return ret
}

// App returns an app snapshot
func (m *Marketplace) App(id int) (App, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return App{}, false
	}
	return *app, true
}

// Validation returns a validation snapshot
func (m *Marketplace) Validation(id string) (Validation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	validation, ok := m.validations[id]
	if !ok {
		return Validation{}, false
	}
	return *validation, true
}

func (m *Marketplace) record(call Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *Marketplace) failure(method, path string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.Failures[method+" "+path]
	return status, ok
}

func (m *Marketplace) validate(w http.ResponseWriter, body map[string]any) {
	manifest, _ := body["manifest"].(string)
	if manifest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"manifest": []string{"This field is required."}})
		return
	}
	m.mu.Lock()
	validation := &Validation{
		ID:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		Manifest: manifest,
		Invalid:  m.InvalidManifests[manifest],
	}
	m.validations[validation.ID] = validation
	m.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         validation.ID,
		"processed":  false,
		"valid":      false,
		"validation": "",
	})
}

func (m *Marketplace) validationResult(w http.ResponseWriter, id string) {
	m.mu.Lock()
	validation, ok := m.validations[id]
	if !ok {
		m.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	validation.Polls++
	processed := validation.Polls > m.ProcessAfter
	invalid := validation.Invalid
	m.mu.Unlock()

	var detail any = ""
	if processed && invalid {
		detail = map[string]any{
			"errors":   1,
			"messages": []map[string]any{{"type": "error", "message": "Manifest is not valid"}},
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         id,
		"processed":  processed,
		"valid":      processed && !invalid,
		"validation": detail,
	})
}

func (m *Marketplace) create(w http.ResponseWriter, body map[string]any) {
	validationID, _ := body["manifest"].(string)
	m.mu.Lock()
	validation, ok := m.validations[validationID]
	if !ok || validation.Polls <= m.ProcessAfter || validation.Invalid {
		m.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "manifest is not valid: " + validationID})
		return
	}
	app := &App{
		ID:          m.nextAppID,
		ManifestURL: validation.Manifest,
		Status:      "incomplete",
	}
	app.Slug = "app-" + strconv.Itoa(app.ID)
	m.apps[app.ID] = app
	m.nextAppID++
	m.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":           app.ID,
		"slug":         app.Slug,
		"manifest_url": app.ManifestURL,
		"resource_uri": fmt.Sprintf("/api/v1/apps/app/%d/", app.ID),
	})
}

func (m *Marketplace) list(w http.ResponseWriter) {
	m.mu.Lock()
	objects := make([]App, 0, len(m.apps))
	for id := 100; len(objects) < len(m.apps) && id < m.nextAppID; id++ {
		if app, ok := m.apps[id]; ok {
			objects = append(objects, *app)
		}
	}
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"objects": objects})
}

func (m *Marketplace) app(w http.ResponseWriter, method string, appID int, body map[string]any) {
	m.mu.Lock()
	app, ok := m.apps[appID]
	if !ok {
		m.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	switch method {
	case http.MethodGet:
		snapshot := *app
		m.mu.Unlock()
		writeJSON(w, http.StatusOK, snapshot)
	case http.MethodPut:
		app.Data = body
		m.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	case http.MethodDelete:
		delete(m.apps, appID)
		m.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		m.mu.Unlock()
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (m *Marketplace) createPreview(w http.ResponseWriter, appID int, body map[string]any) {
	file, _ := body["file"].(map[string]any)
	fileType, _ := file["type"].(string)
	encoded, _ := file["data"].(string)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if fileType == "" || err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"file": []string{"invalid file"}})
		return
	}
	position, _ := body["position"].(float64)
	m.mu.Lock()
	app, ok := m.apps[appID]
	if !ok {
		m.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	preview := &Preview{ID: m.nextPreviewID, AppID: appID, Position: int(position), FileType: fileType, Size: len(data)}
	m.nextPreviewID++
	m.previews[preview.ID] = preview
	app.Previews = append(app.Previews, preview.ID)
	m.mu.Unlock()
	writeJSON(w, http.StatusCreated, preview)
}

func (m *Marketplace) preview(w http.ResponseWriter, method string, previewID int) {
	m.mu.Lock()
	preview, ok := m.previews[previewID]
	if !ok {
		m.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	snapshot := *preview
	if method == http.MethodDelete {
		delete(m.previews, previewID)
	}
	m.mu.Unlock()
	if method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (m *Marketplace) contentRatings(w http.ResponseWriter, appID int, body map[string]any) {
	submissionID, hasSubmission := body["submission_id"].(string)
	securityCode, hasCode := body["security_code"].(string)
	if !hasSubmission || !hasCode {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "submission_id and security_code are required"})
		return
	}
	m.mu.Lock()
	app, ok := m.apps[appID]
	if ok {
		app.ContentRatings = map[string]string{"submission_id": submissionID, "security_code": securityCode}
	}
	m.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{})
}

func (m *Marketplace) status(w http.ResponseWriter, appID int, body map[string]any) {
	m.mu.Lock()
	app, ok := m.apps[appID]
	if !ok {
		m.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
		return
	}
	if status, ok := body["status"].(string); ok && status != "" {
		app.Status = status
	}
	if disabled, ok := body["disabled_by_user"].(bool); ok {
		app.DisabledByUser = disabled
	}
	reply := map[string]any{"status": app.Status, "disabled_by_user": app.DisabledByUser}
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, reply)
}

func (m *Marketplace) categories(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"objects": m.Categories})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
