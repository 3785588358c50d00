package onboard

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/marketplace"
	"gopkg.in/yaml.v3"
)

const (
	defaultSupportEmail       = "app-reviewers@mozilla.org"
	defaultContentRatingID    = "0"
	defaultScreenshotPosition = 1
)

// Config represents onboarding settings
type Config struct {
	SupportEmail string `yaml:"supportEmail,omitempty"`
	PremiumType  string `yaml:"premiumType,omitempty"`
	// SubmissionID and SecurityCode identify the content rating certificate.
	SubmissionID string `yaml:"submissionId,omitempty"`
	SecurityCode string `yaml:"securityCode,omitempty"`
	// Screenshot is uploaded for apps without their own screenshot.
	Screenshot         string     `yaml:"screenshot,omitempty"`
	ScreenshotPosition int        `yaml:"screenshotPosition,omitempty"`
	Submit             bool       `yaml:"submit,omitempty"`
	Poll               PollConfig `yaml:"poll,omitempty"`
}

// PollConfig controls validation polling
type PollConfig struct {
	Interval    time.Duration `yaml:"interval,omitempty"`
	MaxInterval time.Duration `yaml:"maxInterval,omitempty"`
	Multiplier  float64       `yaml:"multiplier,omitempty"`
	// Timeout caps total polling time, zero disables it.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// MaxSweeps caps the number of passes over pending validations, zero disables it.
	MaxSweeps int `yaml:"maxSweeps,omitempty"`
	// RequestsPerSecond paces poll requests, zero or less means unlimited.
	RequestsPerSecond float64 `yaml:"requestsPerSecond,omitempty"`
}

// Init sets defaults
func (c *PollConfig) Init() {
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = 10 * c.Interval
	}
	if c.Multiplier < 1 {
		c.Multiplier = 1.5
	}
}

// Init sets defaults
func (c *Config) Init() {
	if c.SupportEmail == "" {
		c.SupportEmail = defaultSupportEmail
	}
	if c.PremiumType == "" {
		c.PremiumType = marketplace.PremiumFree
	}
	if c.SubmissionID == "" {
		c.SubmissionID = defaultContentRatingID
	}
	if c.SecurityCode == "" {
		c.SecurityCode = defaultContentRatingID
	}
	if c.ScreenshotPosition == 0 {
		c.ScreenshotPosition = defaultScreenshotPosition
	}
	c.Poll.Init()
}

// DefaultConfig returns config with defaults
func DefaultConfig() *Config {
	ret := &Config{Poll: PollConfig{Timeout: 10 * time.Minute, RequestsPerSecond: 10}}
	ret.Init()
	return ret
}

// LoadConfig loads YAML config, unset fields take defaults.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.Init()
	return ret, nil
}
