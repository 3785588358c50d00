package onboard

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/marketplace/auth"
)

const defaultScreenshotName = "screenshot.png"

type Options struct {
	Apps            string        `short:"d" long:"apps" description:"app descriptor directory" default:"reviewer_apps"`
	Screenshot      string        `short:"s" long:"screenshot" description:"screenshot uploaded for every app (default: <apps>/screenshot.png)"`
	ConfigURL       string        `short:"c" long:"config" description:"YAML onboarding config file"`
	SecretURL       string        `long:"secret" description:"scy secret resource holding consumerKey and consumerSecret"`
	SecretKey       string        `long:"secret-key" description:"secret encryption key, empty for a plain JSON secret" default:"blowfish://default"`
	APIKey          string        `long:"api-key" description:"consumer key" env:"MARKETPLACE_API_KEY"`
	APISecret       string        `long:"api-secret" description:"consumer secret" env:"MARKETPLACE_API_SECRET"`
	SupportEmail    string        `long:"support-email" description:"support email set on every app"`
	SubmissionID    string        `long:"submission-id" description:"content rating submission id"`
	SecurityCode    string        `long:"security-code" description:"content rating security code"`
	PollInterval    time.Duration `long:"poll-interval" description:"initial delay between validation sweeps"`
	PollMaxInterval time.Duration `long:"poll-max-interval" description:"maximum delay between validation sweeps"`
	PollTimeout     time.Duration `long:"poll-timeout" description:"maximum validation polling time"`
	Prefix          string        `long:"prefix" description:"API path prefix"`
	Submit          bool          `long:"submit" description:"submit apps for review once populated"`
	Verbose         bool          `short:"v" long:"verbose" description:"debug logging"`
	Args            struct {
		URL       string `positional-arg-name:"url" description:"marketplace url" required:"yes"`
		APIKey    string `positional-arg-name:"apiKey" description:"consumer key"`
		APISecret string `positional-arg-name:"apiSecret" description:"consumer secret"`
	} `positional-args:"yes"`
}

// AppsURL returns descriptor directory URL
func (o *Options) AppsURL() string {
	return location(o.Apps)
}

// Config loads config file if set and applies flag overrides
func (o *Options) Config(ctx context.Context, fs afs.Service) (*Config, error) {
	ret := DefaultConfig()
	if o.ConfigURL != "" {
		configURL := location(o.ConfigURL)
		var err error
		if ret, err = LoadConfig(ctx, fs, configURL); err != nil {
			return nil, err
		}
		if ret.Screenshot != "" && !isAbsolute(ret.Screenshot) {
			ret.Screenshot = url.JoinUNC(parentURL(configURL), ret.Screenshot)
		}
	}
	if o.SupportEmail != "" {
		ret.SupportEmail = o.SupportEmail
	}
	if o.SubmissionID != "" {
		ret.SubmissionID = o.SubmissionID
	}
	if o.SecurityCode != "" {
		ret.SecurityCode = o.SecurityCode
	}
	if o.PollInterval > 0 {
		ret.Poll.Interval = o.PollInterval
	}
	if o.PollMaxInterval > 0 {
		ret.Poll.MaxInterval = o.PollMaxInterval
	}
	if o.PollTimeout > 0 {
		ret.Poll.Timeout = o.PollTimeout
	}
	if o.Submit {
		ret.Submit = true
	}
	switch {
	case o.Screenshot != "":
		ret.Screenshot = location(o.Screenshot)
	case ret.Screenshot == "":
		ret.Screenshot = url.Join(o.AppsURL(), defaultScreenshotName)
	}
	ret.Init()
	return ret, nil
}

// Credentials resolves consumer credentials: positional arguments, then
// flags or environment, then the scy secret resource.
func (o *Options) Credentials(ctx context.Context) (auth.Credentials, error) {
	if credentials := auth.NewCredentials(o.Args.APIKey, o.Args.APISecret); credentials.Validate() == nil {
		return credentials, nil
	}
	if credentials := auth.NewCredentials(o.APIKey, o.APISecret); credentials.Validate() == nil {
		return credentials, nil
	}
	if o.SecretURL != "" {
		return auth.LoadCredentials(ctx, location(o.SecretURL), o.SecretKey)
	}
	return auth.Credentials{}, auth.ErrMissingCredentials
}

func parentURL(URL string) string {
	if index := strings.LastIndex(URL, "/"); index > 0 {
		return URL[:index]
	}
	return URL
}

// location turns a relative local path into an absolute one
func location(URL string) string {
	if strings.Contains(URL, "://") || filepath.IsAbs(URL) {
		return URL
	}
	if abs, err := filepath.Abs(URL); err == nil {
		return abs
	}
	return URL
}
