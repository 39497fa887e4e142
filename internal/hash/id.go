// Package hash wraps xxHash64 for the two shapes callers need: a plain
// string hash and a running digest for composite keys (value kind tag
// plus payload bytes).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates several fields into a single xxHash64, used to hash
// tagged variants where no single field alone identifies the value.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates a fresh Digest.
func NewDigest() Digest {
	return Digest{d: xxhash.New()}
}

// WriteByte folds a single byte into the digest.
func (h Digest) WriteByte(b byte) {
	_, _ = h.d.Write([]byte{b})
}

// Write folds a byte slice into the digest.
func (h Digest) Write(b []byte) {
	_, _ = h.d.Write(b)
}

// Sum64 returns the accumulated hash.
func (h Digest) Sum64() uint64 {
	return h.d.Sum64()
}
