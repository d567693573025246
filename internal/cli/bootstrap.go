package cli

import (
	"audioscribe/internal/app"
	"audioscribe/internal/config"
	"audioscribe/internal/logging"
)

// Version is stamped at build time via -ldflags.
var Version = "v0.1.0"

// Bootstrap loads configuration, builds the logger, and wires the app.
// The returned cleanup closes the database and cache connections.
func Bootstrap(configPath string, verbose bool) (*app.App, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(logging.Options{
		Verbose: verbose,
		JSON:    cfg.Server.Environment == "production",
	})
	if err != nil {
		return nil, nil, err
	}

	application, cleanup, err := app.InitializeApp(cfg, logger, Version)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return application, func() {
		cleanup()
		logger.Sync()
	}, nil
}
