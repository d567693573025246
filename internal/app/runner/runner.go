package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"audioscribe/internal/app/cache"
	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/storage"
)

// Runner drives one record through a single synchronous processing attempt:
// processing -> engine invocation -> terminal state, persisted at each step.
type Runner struct {
	dao     repository.RecordDAO
	store   storage.BlobStore
	loader  *engine.Loader
	cache   *cache.TranscriptCache // nil when no cache is configured
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New creates a runner. cache may be nil.
func New(
	dao repository.RecordDAO,
	store storage.BlobStore,
	loader *engine.Loader,
	resultCache *cache.TranscriptCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		dao:     dao,
		store:   store,
		loader:  loader,
		cache:   resultCache,
		metrics: m,
		logger:  logger,
	}
}

// Process runs one transcription attempt for a record in pending or
// processing state. Failures after this point are captured onto the record
// (status=failed, error_message set) and also returned. If ctx is canceled
// before a terminal state is persisted, the record is left in processing for
// administrative recovery and no terminal write happens.
func (r *Runner) Process(ctx context.Context, rec *model.Record) error {
	rec.MarkProcessing(time.Now())
	if err := r.dao.Update(ctx, rec); err != nil {
		return fmt.Errorf("persist processing state: %w", err)
	}

	start := time.Now()

	localPath, cleanup, err := r.store.LocalPath(ctx, rec.StorageKey)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return r.fail(ctx, rec, start, &StorageError{Err: err})
	}
	defer cleanup()

	var contentHash string
	if r.cache != nil {
		if hash, hashErr := cache.HashFile(localPath); hashErr == nil {
			contentHash = hash
			if text, ok := r.cache.Get(ctx, hash); ok {
				r.logger.Info("transcription served from cache",
					zap.String("record_id", rec.ID),
					zap.String("filename", rec.OriginalFilename))
				r.metrics.CacheHitsTotal.Inc()
				return r.complete(ctx, rec, start, text)
			}
		}
	}

	eng, err := r.loader.Get(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return r.fail(ctx, rec, start, &EngineUnavailableError{Err: err})
	}
	r.metrics.ModelLoaded.Set(1)

	r.logger.Info("transcribing audio file",
		zap.String("record_id", rec.ID),
		zap.String("filename", rec.OriginalFilename),
		zap.Int64("size", rec.FileSize))

	text, err := eng.Transcribe(ctx, localPath)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return r.fail(ctx, rec, start, &TranscriptionError{Err: err})
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if r.cache != nil && contentHash != "" {
		r.cache.Put(ctx, contentHash, text)
	}
	return r.complete(ctx, rec, start, text)
}

func (r *Runner) complete(ctx context.Context, rec *model.Record, start time.Time, text string) error {
	elapsed := time.Since(start).Seconds()
	rec.MarkCompleted(text, elapsed, time.Now())
	if err := r.dao.Update(ctx, rec); err != nil {
		return fmt.Errorf("persist completed state: %w", err)
	}
	r.metrics.TranscriptionsTotal.WithLabelValues(string(model.StatusCompleted)).Inc()
	r.metrics.ProcessingSeconds.Observe(elapsed)
	r.logger.Info("transcription completed",
		zap.String("record_id", rec.ID),
		zap.Float64("processing_time", elapsed))
	return nil
}

func (r *Runner) fail(ctx context.Context, rec *model.Record, start time.Time, cause error) error {
	elapsed := time.Since(start).Seconds()
	rec.MarkFailed(cause.Error(), elapsed, time.Now())
	if err := r.dao.Update(ctx, rec); err != nil {
		r.logger.Error("failed to persist failure state",
			zap.String("record_id", rec.ID), zap.Error(err))
	}
	r.metrics.TranscriptionsTotal.WithLabelValues(string(model.StatusFailed)).Inc()
	r.metrics.ProcessingSeconds.Observe(elapsed)
	r.logger.Warn("transcription failed",
		zap.String("record_id", rec.ID),
		zap.Error(cause))
	return cause
}
