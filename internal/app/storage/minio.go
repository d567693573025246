package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig configures the object storage backend.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps blobs in a MinIO (or S3-compatible) bucket.
type MinioStore struct {
	client *minio.Client
	cfg    MinioConfig
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, cfg: cfg}, nil
}

// Save uploads the payload under a timestamped uuid key.
func (s *MinioStore) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("audio/%d-%s%s",
		time.Now().Unix(), uuid.New().String()[:8], filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"original-name": filepath.Base(filename),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	return key, nil
}

// LocalPath downloads the blob into a temp file for processing. The cleanup
// removes the transient copy regardless of transcription outcome.
func (s *MinioStore) LocalPath(ctx context.Context, key string) (string, func(), error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch blob: %w", err)
	}
	defer obj.Close()

	tmp, err := os.CreateTemp("", "audioscribe-*"+filepath.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("download blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	path := tmp.Name()
	cleanup := func() { os.Remove(path) }
	return path, cleanup, nil
}

// URL returns the direct object URL.
func (s *MinioStore) URL(key string) string {
	protocol := "http"
	if s.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.cfg.Endpoint, s.cfg.Bucket, key)
}

// Delete removes the object.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
