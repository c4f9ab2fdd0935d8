// Package cache stores rendered barcode images keyed by label text.
//
// Three implementations share the [Cache] interface:
//
//   - [FileCache] keeps one SVG file per label in a directory, the layout
//     the HTML sheet links to (barcodes/<label>.svg)
//   - [RedisCache] shares images between server instances
//   - [NullCache] disables caching
//
// Keys are rendered label strings. They are validated with
// [errors.ValidateLabelText] before they touch a file system path or a
// Redis key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by label text.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl keeps the entry until it is
	// deleted. Backends without expiry ignore ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLBarcode is the lifetime of a barcode image in shared caches. Barcodes
// depend only on the label text, so they never go stale.
const TTLBarcode time.Duration = 0
