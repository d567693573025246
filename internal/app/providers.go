package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"audioscribe/internal/app/cache"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/repository/pg"
	"audioscribe/internal/app/repository/sqlite"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/upload"
	"audioscribe/internal/config"
)

// ProvideDAO opens the configured database backend.
func ProvideDAO(cfg config.Config) (repository.RecordDAO, func(), error) {
	switch cfg.DB.Driver {
	case "postgres":
		db, err := pg.NewPostgresDB(cfg.DB.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, func() { db.Close() }, nil
	default:
		db, err := sqlite.NewSQLiteDB(cfg.DB.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, func() { db.Close() }, nil
	}
}

// ProvideStore builds the configured blob store.
func ProvideStore(cfg config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.Storage.Minio.Endpoint,
			AccessKey: cfg.Storage.Minio.AccessKey,
			SecretKey: cfg.Storage.Minio.SecretKey,
			Bucket:    cfg.Storage.Minio.Bucket,
			UseSSL:    cfg.Storage.Minio.UseSSL,
		})
	default:
		return storage.NewLocalStore(cfg.Storage.UploadDir)
	}
}

// ProvideEngineFactory returns the factory the loader runs on first use.
// Construction is deferred so a missing binary or model file surfaces as a
// retryable load failure instead of aborting startup.
func ProvideEngineFactory(cfg config.Config, logger *zap.Logger) engine.Factory {
	if cfg.Engine.Kind == "openai" {
		return func() (engine.Engine, error) {
			return engine.NewOpenAI(cfg.Engine.OpenAIKey, cfg.Engine.Language)
		}
	}
	return func() (engine.Engine, error) {
		modelFile, err := engine.VariantFile(cfg.Engine.ModelVariant)
		if err != nil {
			return nil, err
		}
		modelPath := filepath.Join(cfg.Engine.ModelDir, modelFile)
		return engine.NewWhisperCpp(cfg.Engine.BinaryPath, modelPath, cfg.Engine.Language, logger)
	}
}

// ProvideCache connects the transcript result cache. An empty address or an
// unreachable Redis disables caching rather than failing startup.
func ProvideCache(cfg config.Config, logger *zap.Logger) (*cache.TranscriptCache, func()) {
	if cfg.Redis.Addr == "" {
		return nil, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := cache.New(ctx, cfg.Redis.Addr, 0)
	if err != nil {
		logger.Warn("result cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return nil, func() {}
	}
	return c, func() { c.Close() }
}

// ProvideRegistry builds the Prometheus registry with runtime collectors.
func ProvideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// ProvideValidator builds the upload validator from config.
func ProvideValidator(cfg config.Config) *upload.Validator {
	return upload.NewValidator(cfg.MaxUploadBytes(), cfg.Upload.AllowedFormats)
}
