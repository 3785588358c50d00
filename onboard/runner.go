package onboard

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/marketplace"
	"github.com/viant/marketplace/connection"
)

func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	_, err = Execute(ctx, options, newLogger(options.Verbose))
	return err
}

// Execute onboards apps described in options.Apps
func Execute(ctx context.Context, options *Options, logger logrus.FieldLogger) ([]*Application, error) {
	fs := afs.New()
	config, err := options.Config(ctx, fs)
	if err != nil {
		return nil, err
	}
	credentials, err := options.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	endpoint, err := marketplace.ParseEndpoint(options.Args.URL)
	if err != nil {
		return nil, err
	}
	if options.Prefix != "" {
		endpoint.Prefix = options.Prefix
	}
	client, err := marketplace.New(credentials,
		marketplace.WithEndpoint(endpoint),
		marketplace.WithFileSystem(fs),
		marketplace.WithConnectionOptions(connection.WithLogger(logger)),
	)
	if err != nil {
		return nil, err
	}
	descriptors, err := LoadDescriptors(ctx, fs, options.AppsURL())
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"apps": len(descriptors), "url": options.Args.URL}).Info("onboarding")
	apps, err := New(client, WithConfig(config), WithLogger(logger)).Onboard(ctx, descriptors)
	if err != nil {
		return apps, err
	}
	for _, app := range apps {
		logger.WithFields(logrus.Fields{"app_id": app.AppID, "manifest": app.Descriptor.ManifestURL}).Info("onboarded")
	}
	return apps, nil
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
