package marketplace

import "strings"

// Premium types
const (
	PremiumFree = "free"
)

// App statuses a user may request
const (
	StatusIncomplete = "incomplete"
	StatusPending    = "pending"
	StatusPublic     = "public"
	StatusWaiting    = "waiting"
)

// AppData represents app metadata sent with Update
type AppData struct {
	Name          string   `json:"name"`
	Summary       string   `json:"summary"`
	Categories    []string `json:"categories"`
	SupportEmail  string   `json:"support_email"`
	DeviceTypes   []string `json:"device_types"`
	PremiumType   string   `json:"premium_type"`
	PrivacyPolicy string   `json:"privacy_policy"`
	Description   string   `json:"description,omitempty"`
	Homepage      string   `json:"homepage,omitempty"`
	SupportURL    string   `json:"support_url,omitempty"`
}

// Validate returns ContractViolationError listing every missing required field.
func (d *AppData) Validate() error {
	if d == nil {
		return &ContractViolationError{Operation: "update", Fields: []string{"name", "summary", "categories", "support_email", "device_types", "premium_type", "privacy_policy"}}
	}
	var missing []string
	if isBlank(d.Name) {
		missing = append(missing, "name")
	}
	if isBlank(d.Summary) {
		missing = append(missing, "summary")
	}
	if len(d.Categories) == 0 {
		missing = append(missing, "categories")
	}
	if isBlank(d.SupportEmail) {
		missing = append(missing, "support_email")
	}
	if len(d.DeviceTypes) == 0 {
		missing = append(missing, "device_types")
	}
	if isBlank(d.PremiumType) {
		missing = append(missing, "premium_type")
	}
	if isBlank(d.PrivacyPolicy) {
		missing = append(missing, "privacy_policy")
	}
	if len(missing) > 0 {
		return &ContractViolationError{Operation: "update", Fields: missing}
	}
	return nil
}

// StateChange represents app_state payload, at least one field is required.
type StateChange struct {
	Status         string `json:"status,omitempty"`
	DisabledByUser *bool  `json:"disabled_by_user,omitempty"`
}

// Validate checks that status or disabled_by_user is set
func (s *StateChange) Validate() error {
	if s == nil || (s.Status == "" && s.DisabledByUser == nil) {
		return &ContractViolationError{Operation: "app_state", Fields: []string{"status|disabled_by_user"}}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
