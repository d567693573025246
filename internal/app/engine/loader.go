package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Loader initializes a single shared Engine at most once per process.
//
// Concurrent first calls serialize on the mutex so only one caller runs the
// factory; everyone else observes the same instance once it is ready. A
// failed initialization is returned to the caller and not cached, so a later
// call retries.
type Loader struct {
	mu      sync.Mutex
	engine  Engine
	factory Factory
	logger  *zap.Logger
}

// NewLoader creates a lazy loader around the given factory.
func NewLoader(factory Factory, logger *zap.Logger) *Loader {
	return &Loader{factory: factory, logger: logger}
}

// Get returns the shared engine, initializing it on first use. The context
// is checked before a load is attempted so callers whose request was already
// canceled do not pay the initialization cost.
func (l *Loader) Get(ctx context.Context) (Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.engine != nil {
		return l.engine, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info("loading transcription engine")
	eng, err := l.factory()
	if err != nil {
		l.logger.Error("engine initialization failed", zap.Error(err))
		return nil, fmt.Errorf("engine initialization: %w", err)
	}
	l.engine = eng
	l.logger.Info("transcription engine ready")
	return l.engine, nil
}

// Loaded reports whether the engine has been initialized, without
// triggering a load. Used by the health endpoint.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine != nil
}
