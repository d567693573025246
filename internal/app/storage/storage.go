package storage

import (
	"context"
	"io"
)

// BlobStore holds uploaded audio bytes referenced by a record's storage key.
type BlobStore interface {
	// Save stores the payload and returns the key the record should hold.
	Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	// LocalPath makes the blob available as a file on disk. The returned
	// cleanup must be called when processing finishes; for stores that
	// materialize a temporary copy it removes that copy.
	LocalPath(ctx context.Context, key string) (string, func(), error)
	// URL returns a resolvable location for the blob.
	URL(key string) string
	// Delete removes the blob. Deleting a record must delete its blob.
	Delete(ctx context.Context, key string) error
}
