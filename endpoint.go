package marketplace

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPort     = 443
	DefaultDomain   = "marketplace.mozilla.org"
	DefaultProtocol = "https"

	apiVersionPath = "/api/v1"
)

// URL template keys
const (
	URLValidate         = "validate"
	URLValidationResult = "validation_result"
	URLCreate           = "create"
	URLApp              = "app"
	URLCreateScreenshot = "create_screenshot"
	URLScreenshot       = "screenshot"
	URLCategories       = "categories"
	URLContentRatings   = "content_ratings"
	URLEnable           = "enable"
)

// URLs maps a template key to its resource path, %s is the resource id.
var URLs = map[string]string{
	URLValidate:         "/apps/validation/",
	URLValidationResult: "/apps/validation/%s/",
	URLCreate:           "/apps/app/",
	URLApp:              "/apps/app/%s/",
	URLCreateScreenshot: "/apps/app/%s/preview/",
	URLScreenshot:       "/apps/preview/%s/",
	URLCategories:       "/apps/category/",
	URLContentRatings:   "/apps/app/%s/content_ratings/",
	URLEnable:           "/apps/status/%s/",
}

// Endpoint locates the marketplace API
type Endpoint struct {
	Protocol string `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Domain   string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Port     int    `yaml:"port,omitempty" json:"port,omitempty"`
	Prefix   string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

// DefaultEndpoint returns the production marketplace endpoint
func DefaultEndpoint() Endpoint {
	return Endpoint{Protocol: DefaultProtocol, Domain: DefaultDomain, Port: DefaultPort}
}

// URL returns the full URL for a template key, args fill the template placeholders.
func (e Endpoint) URL(key string, args ...any) (string, error) {
	template, ok := URLs[key]
	if !ok {
		return "", fmt.Errorf("unknown url key: %v", key)
	}
	if expected := strings.Count(template, "%s"); expected != len(args) {
		return "", fmt.Errorf("url %v expects %d argument(s), got %d", key, expected, len(args))
	}
	resource := template
	if len(args) > 0 {
		resource = fmt.Sprintf(template, args...)
	}
	u := url.URL{
		Scheme: e.Protocol,
		Host:   net.JoinHostPort(e.Domain, strconv.Itoa(e.Port)),
		Path:   strings.TrimSuffix(e.Prefix, "/") + apiVersionPath + resource,
	}
	return u.String(), nil
}

func (e *Endpoint) init() {
	if e.Protocol == "" {
		e.Protocol = DefaultProtocol
	}
	if e.Domain == "" {
		e.Domain = DefaultDomain
	}
	if e.Port == 0 {
		e.Port = defaultPort(e.Protocol)
	}
}

// ParseEndpoint builds an endpoint from a base URL such as http://localhost:8000/prefix
func ParseEndpoint(rawURL string) (Endpoint, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Endpoint{}, fmt.Errorf("marketplace url was empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = DefaultProtocol + "://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Endpoint{}, fmt.Errorf("failed to parse marketplace url %q: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("marketplace url %q has no host", rawURL)
	}
	ret := Endpoint{
		Protocol: strings.ToLower(u.Scheme),
		Domain:   u.Hostname(),
		Prefix:   strings.TrimSuffix(u.Path, "/"),
	}
	if port := u.Port(); port != "" {
		if ret.Port, err = strconv.Atoi(port); err != nil {
			return Endpoint{}, fmt.Errorf("invalid port in marketplace url %q: %w", rawURL, err)
		}
	} else {
		ret.Port = defaultPort(ret.Protocol)
	}
	return ret, nil
}

func defaultPort(protocol string) int {
	if protocol == "http" {
		return 80
	}
	return DefaultPort
}
