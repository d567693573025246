package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEngine struct{}

func (stubEngine) Transcribe(ctx context.Context, inputFilePath string) (string, error) {
	return "stub", nil
}

func TestLoader_InitializesOnce(t *testing.T) {
	var calls int32
	loader := NewLoader(func() (Engine, error) {
		atomic.AddInt32(&calls, 1)
		return stubEngine{}, nil
	}, zap.NewNop())

	assert.False(t, loader.Loaded())

	const goroutines = 20
	engines := make([]Engine, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			eng, err := loader.Get(context.Background())
			require.NoError(t, err)
			engines[i] = eng
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "factory must run exactly once")
	for _, eng := range engines {
		assert.Equal(t, engines[0], eng)
	}
	assert.True(t, loader.Loaded())
}

func TestLoader_FailedInitIsRetried(t *testing.T) {
	var calls int32
	loader := NewLoader(func() (Engine, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("model file missing")
		}
		return stubEngine{}, nil
	}, zap.NewNop())

	_, err := loader.Get(context.Background())
	require.Error(t, err)
	assert.False(t, loader.Loaded(), "a failed init must not be cached")

	eng, err := loader.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, eng)
	assert.True(t, loader.Loaded())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLoader_CanceledContextSkipsLoad(t *testing.T) {
	var calls int32
	loader := NewLoader(func() (Engine, error) {
		atomic.AddInt32(&calls, 1)
		return stubEngine{}, nil
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	// A loaded engine is still returned to canceled callers.
	_, err = loader.Get(context.Background())
	require.NoError(t, err)
	eng, err := loader.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, eng)
}

func TestVariantFile(t *testing.T) {
	file, err := VariantFile("base")
	require.NoError(t, err)
	assert.Equal(t, "ggml-base.bin", file)

	file, err = VariantFile("large")
	require.NoError(t, err)
	assert.Equal(t, "ggml-large-v3.bin", file)

	_, err = VariantFile("huge")
	assert.Error(t, err)

	assert.Equal(t, []string{"base", "large", "medium", "small", "tiny"}, Variants())
}
