package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "audioscribe:transcript:"

// TranscriptCache memoizes completed transcriptions by content hash, so
// re-uploading identical audio skips the engine entirely.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. A ping failure is returned so the caller can fall
// back to running without a cache.
func New(ctx context.Context, addr string, ttl time.Duration) (*TranscriptCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TranscriptCache{client: client, ttl: ttl}, nil
}

// HashFile returns the hex SHA-256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached transcription for a hash, or ok=false on a miss.
// Transport errors are reported as misses; the cache is best-effort.
func (c *TranscriptCache) Get(ctx context.Context, hash string) (string, bool) {
	text, err := c.client.Get(ctx, keyPrefix+hash).Result()
	if err != nil {
		return "", false
	}
	return text, true
}

// Put stores a completed transcription under its content hash.
func (c *TranscriptCache) Put(ctx context.Context, hash, text string) {
	c.client.Set(ctx, keyPrefix+hash, text, c.ttl)
}

// Close releases the Redis connection.
func (c *TranscriptCache) Close() error {
	return c.client.Close()
}
