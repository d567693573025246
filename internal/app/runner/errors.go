package runner

import "fmt"

// EngineUnavailableError wraps a Loader initialization failure.
type EngineUnavailableError struct {
	Err error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("transcription engine unavailable: %v", e.Err)
}

func (e *EngineUnavailableError) Unwrap() error { return e.Err }

// TranscriptionError wraps a failure raised by the engine mid-inference.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// StorageError wraps a blob read/write failure during processing.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
