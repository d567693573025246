package app

import (
	"go.uber.org/zap"

	"audioscribe/internal/api/server"
	"audioscribe/internal/app/cache"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/runner"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/config"
)

// App bundles the wired service graph. Commands pick the pieces they need;
// serve uses Server, the batch transcriber uses DAO and Runner directly.
type App struct {
	Config  config.Config
	Server  *server.Server
	DAO     repository.RecordDAO
	Store   storage.BlobStore
	Loader  *engine.Loader
	Runner  *runner.Runner
	Cache   *cache.TranscriptCache
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(
	cfg config.Config,
	srv *server.Server,
	dao repository.RecordDAO,
	store storage.BlobStore,
	loader *engine.Loader,
	run *runner.Runner,
	resultCache *cache.TranscriptCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *App {
	return &App{
		Config:  cfg,
		Server:  srv,
		DAO:     dao,
		Store:   store,
		Loader:  loader,
		Runner:  run,
		Cache:   resultCache,
		Metrics: m,
		Logger:  logger,
	}
}
