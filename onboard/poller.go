package onboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/marketplace"
	"github.com/viant/marketplace/internal/collection"
	"golang.org/x/time/rate"
)

// ErrPollTimeout is returned when validations are still pending after the poll budget.
var ErrPollTimeout = errors.New("manifest validation polling timed out")

// Validator polls a manifest validation
type Validator interface {
	IsManifestValid(ctx context.Context, validationID string) (*marketplace.ValidationResult, error)
}

// Poller waits for submitted manifests to be processed
type Poller struct {
	config  PollConfig
	limiter *rate.Limiter
	logger  logrus.FieldLogger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller
func NewPoller(config PollConfig, logger logrus.FieldLogger) *Poller {
	config.Init()
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Poller{
		config:  config,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		now:     time.Now,
		sleep:   sleep,
	}
}

// Wait sweeps pending validations until all are valid. An invalid manifest
// returns ValidationFailedError, a non-200 poll returns UnexpectedStatusError.
func (p *Poller) Wait(ctx context.Context, validator Validator, apps []*Application) error {
	byID := make(map[string]*Application, len(apps))
	pending := collection.NewOrderedSet[string]()
	for _, app := range apps {
		byID[app.ValidationID] = app
		pending.Add(app.ValidationID)
	}
	started := p.now()
	delay := p.config.Interval
	for sweep := 1; pending.Len() > 0; sweep++ {
		for _, validationID := range pending.Keys() {
			if err := p.limiter.Wait(ctx); err != nil {
				return err
			}
			result, err := validator.IsManifestValid(ctx, validationID)
			if err != nil {
				return err
			}
			switch result.State() {
			case marketplace.ValidationValid:
				pending.Remove(validationID)
				p.logger.WithField("validation_id", validationID).Info("manifest is valid")
			case marketplace.ValidationInvalid:
				return &marketplace.ValidationFailedError{
					ValidationID: validationID,
					ManifestURL:  byID[validationID].Descriptor.ManifestURL,
					Validation:   result.Validation,
				}
			}
		}
		if pending.Len() == 0 {
			break
		}
		if p.config.MaxSweeps > 0 && sweep >= p.config.MaxSweeps {
			return fmt.Errorf("%w: %d validation(s) pending after %d sweep(s)", ErrPollTimeout, pending.Len(), sweep)
		}
		if p.config.Timeout > 0 && p.now().Sub(started)+delay > p.config.Timeout {
			return fmt.Errorf("%w: %d validation(s) pending after %s", ErrPollTimeout, pending.Len(), p.now().Sub(started).Round(time.Millisecond))
		}
		p.logger.WithFields(logrus.Fields{"pending": pending.Len(), "sweep": sweep, "delay": delay.String()}).Debug("waiting for validation")
		if err := p.sleep(ctx, delay); err != nil {
			return err
		}
		delay = p.next(delay)
	}
	return nil
}

func (p *Poller) next(delay time.Duration) time.Duration {
	ret := time.Duration(float64(delay) * p.config.Multiplier)
	if ret > p.config.MaxInterval {
		return p.config.MaxInterval
	}
	return ret
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
