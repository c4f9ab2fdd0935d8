package cache

import (
	"context"
	"time"
)

// NullCache keeps no images, so every barcode is rendered on demand. It
// still rejects keys that are not valid label text, like the other backends.
type NullCache struct{}

// NewNullCache returns the cache used when no barcode directory is set.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get reports a miss for every valid key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, checkKey(key)
}

// Set discards data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return checkKey(key)
}

// Delete has nothing to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return checkKey(key)
}

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
