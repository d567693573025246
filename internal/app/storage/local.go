package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps blobs as files under a single upload directory.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the upload directory exists.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the payload to a uuid-prefixed file named after the original
// upload, so keys stay unique while remaining recognizable on disk.
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%s-%s", uuid.New().String()[:8], filepath.Base(filename))
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write blob file: %w", err)
	}
	return key, nil
}

// LocalPath returns the blob file itself; no transient copy is needed.
func (s *LocalStore) LocalPath(ctx context.Context, key string) (string, func(), error) {
	path := filepath.Join(s.dir, key)
	if _, err := os.Stat(path); err != nil {
		return "", nil, fmt.Errorf("blob not found: %w", err)
	}
	return path, func() {}, nil
}

// URL returns the serving path for the blob.
func (s *LocalStore) URL(key string) string {
	return "/uploads/" + key
}

// Delete removes the blob file. A missing file is not an error so record
// deletion stays idempotent.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob file: %w", err)
	}
	return nil
}

// Dir returns the directory blobs are stored under.
func (s *LocalStore) Dir() string {
	return s.dir
}
