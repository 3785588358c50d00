package onboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/viant/marketplace"
	"github.com/viant/marketplace/connection"
)

// API represents marketplace operations used by onboarding
type API interface {
	Validator
	ValidateManifest(ctx context.Context, manifestURL string) (*connection.Response, error)
	Create(ctx context.Context, validationID string) (*connection.Response, error)
	Update(ctx context.Context, appID string, data *marketplace.AppData) (*connection.Response, error)
	CreateScreenshot(ctx context.Context, appID, location string, position int) (*connection.Response, error)
	AddContentRatings(ctx context.Context, appID, submissionID, securityCode string) (*connection.Response, error)
	AppState(ctx context.Context, appID string, change *marketplace.StateChange) (*connection.Response, error)
}

// Application represents an onboarded app
type Application struct {
	ValidationID string
	AppID        string
	Descriptor   *AppDescriptor
}

// Service onboards apps: submit, poll, create and populate
type Service struct {
	api    API
	config *Config
	logger logrus.FieldLogger
	poller *Poller
}

// Option represents service option
type Option func(s *Service)

// WithConfig sets onboarding config
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithPoller sets validation poller
func WithPoller(poller *Poller) Option {
	return func(s *Service) {
		s.poller = poller
	}
}

// New creates onboarding service
func New(api API, options ...Option) *Service {
	ret := &Service{api: api}
	for _, opt := range options {
		opt(ret)
	}
	if ret.config == nil {
		ret.config = DefaultConfig()
	}
	ret.config.Init()
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	if ret.poller == nil {
		ret.poller = NewPoller(ret.config.Poll, ret.logger)
	}
	return ret
}

// Onboard submits every manifest, waits until all are valid, then creates
// and populates apps in submission order. It stops at the first failure
// without rollback; the returned applications reflect progress so far.
func (s *Service) Onboard(ctx context.Context, descriptors []*AppDescriptor) ([]*Application, error) {
	if len(descriptors) == 0 {
		return nil, ErrNoDescriptors
	}
	apps, err := s.submit(ctx, descriptors)
	if err != nil {
		return apps, err
	}
	s.logger.WithField("count", len(apps)).Info("manifests submitted")
	if err = s.poller.Wait(ctx, s.api, apps); err != nil {
		return apps, err
	}
	for _, app := range apps {
		if err = s.create(ctx, app); err != nil {
			return apps, err
		}
	}
	for _, app := range apps {
		if err = s.populate(ctx, app); err != nil {
			return apps, err
		}
	}
	return apps, nil
}

func (s *Service) submit(ctx context.Context, descriptors []*AppDescriptor) ([]*Application, error) {
	var ret []*Application
	for _, descriptor := range descriptors {
		resp, err := s.api.ValidateManifest(ctx, descriptor.ManifestURL)
		if err != nil {
			return ret, err
		}
		if err = marketplace.Expect(resp, "validate_manifest", descriptor.ManifestURL, http.StatusCreated); err != nil {
			return ret, err
		}
		validationID, err := marketplace.ResourceID(resp)
		if err != nil {
			return ret, fmt.Errorf("validate_manifest %v: %w", descriptor.ManifestURL, err)
		}
		s.logger.WithFields(logrus.Fields{"manifest": descriptor.ManifestURL, "validation_id": validationID}).Debug("manifest submitted")
		ret = append(ret, &Application{ValidationID: validationID, Descriptor: descriptor})
	}
	return ret, nil
}

func (s *Service) create(ctx context.Context, app *Application) error {
	resp, err := s.api.Create(ctx, app.ValidationID)
	if err != nil {
		return err
	}
	if err = marketplace.Expect(resp, "create", app.ValidationID, http.StatusCreated); err != nil {
		return err
	}
	if app.AppID, err = marketplace.ResourceID(resp); err != nil {
		return fmt.Errorf("create %v: %w", app.ValidationID, err)
	}
	s.logger.WithFields(logrus.Fields{"validation_id": app.ValidationID, "app_id": app.AppID}).Info("app created")
	return nil
}

func (s *Service) populate(ctx context.Context, app *Application) error {
	logger := s.logger.WithField("app_id", app.AppID)
	name := "App " + app.AppID
	resp, err := s.api.Update(ctx, app.AppID, &marketplace.AppData{
		Name:          name,
		Summary:       name,
		Categories:    app.Descriptor.Categories,
		SupportEmail:  s.config.SupportEmail,
		DeviceTypes:   app.Descriptor.DeviceTypes,
		PremiumType:   s.config.PremiumType,
		PrivacyPolicy: app.Descriptor.PrivacyPolicy,
	})
	if err != nil {
		return err
	}
	if err = marketplace.Expect(resp, "update", app.AppID, http.StatusAccepted); err != nil {
		return err
	}

	screenshot := app.Descriptor.Screenshot
	if screenshot == "" {
		screenshot = s.config.Screenshot
	}
	if screenshot == "" {
		return fmt.Errorf("create_screenshot %v: no screenshot configured", app.AppID)
	}
	if resp, err = s.api.CreateScreenshot(ctx, app.AppID, screenshot, s.config.ScreenshotPosition); err != nil {
		return err
	}
	if err = marketplace.Expect(resp, "create_screenshot", app.AppID, http.StatusCreated); err != nil {
		return err
	}

	if resp, err = s.api.AddContentRatings(ctx, app.AppID, s.config.SubmissionID, s.config.SecurityCode); err != nil {
		return err
	}
	if err = marketplace.Expect(resp, "add_content_ratings", app.AppID, http.StatusCreated); err != nil {
		return err
	}

	if s.config.Submit {
		if resp, err = s.api.AppState(ctx, app.AppID, &marketplace.StateChange{Status: marketplace.StatusPending}); err != nil {
			return err
		}
		if err = marketplace.Expect(resp, "app_state", app.AppID, http.StatusOK, http.StatusAccepted); err != nil {
			return err
		}
	}
	logger.Info("app populated")
	return nil
}
