//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"audioscribe/internal/api/server"
	"audioscribe/internal/api/v1/services"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/runner"
	"audioscribe/internal/config"
)

// InitializeApp wires the full service graph from configuration.
func InitializeApp(cfg config.Config, logger *zap.Logger, version string) (*App, func(), error) {
	wire.Build(
		ProvideDAO,
		ProvideStore,
		ProvideEngineFactory,
		ProvideCache,
		ProvideRegistry,
		ProvideValidator,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		metrics.New,
		engine.NewLoader,
		runner.New,
		services.NewTranscriptionService,
		server.NewServer,
		NewApp,
	)
	return nil, nil, nil
}
