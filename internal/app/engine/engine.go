package engine

import "context"

// Engine converts an audio file on disk into text.
type Engine interface {
	Transcribe(ctx context.Context, inputFilePath string) (string, error)
}

// Factory builds an Engine. Construction may be expensive (loading a model
// into memory, probing a binary) and may fail; the Loader guards it.
type Factory func() (Engine, error)
