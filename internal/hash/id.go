// Package hash computes the xxHash64 fingerprints used to key cached blob
// inspections.
package hash

import "github.com/cespare/xxhash/v2"

// Blob computes the xxHash64 of a blob's bytes.
func Blob(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Key identifies a blob by fingerprint and length. Including the length keeps
// a truncated copy of a blob from sharing a cache slot with the original even
// in the unlikely case of a fingerprint collision.
type Key struct {
	Sum uint64
	Len int
}

// BlobKey returns the cache key of data.
func BlobKey(data []byte) Key {
	return Key{Sum: Blob(data), Len: len(data)}
}
