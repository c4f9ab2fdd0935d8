package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// etagLen is the number of hex digits of the image digest kept in an ETag.
const etagLen = 16

// ETag returns a strong HTTP entity tag for a cached image. Identical
// images get identical tags whichever backend produced them.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:])[:etagLen] + `"`
}
