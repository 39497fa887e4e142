// Package collision provides a hash-bucketed lookup table used to
// implement O(1) value interning with explicit collision handling.
//
// A symbol dictionary keys its lookups by a cheap 64-bit hash (see
// internal/hash) but must never treat two different values as the same
// symbol just because their hashes collide. Tracker keeps every key
// that shares a hash in the same bucket and resolves lookups by
// comparing keys within the bucket, so a collision costs a short scan
// instead of a wrong answer.
package collision

// entry pairs an interned key with its symbol index.
type entry[K comparable] struct {
	key   K
	index int
}

// Tracker maps a caller-supplied key to its previously assigned index,
// using a hash as a coarse bucket selector. The zero value is not
// usable; construct with NewTracker.
type Tracker[K comparable] struct {
	buckets  map[uint64][]entry[K]
	count    int
	collided bool
}

// NewTracker creates an empty Tracker.
func NewTracker[K comparable]() *Tracker[K] {
	return &Tracker[K]{
		buckets: make(map[uint64][]entry[K]),
	}
}

// Lookup returns the index previously associated with (hash, key), if any.
func (t *Tracker[K]) Lookup(hash uint64, key K) (int, bool) {
	for _, e := range t.buckets[hash] {
		if e.key == key {
			return e.index, true
		}
	}

	return 0, false
}

// Insert records key under hash with the given index. Callers should
// call Lookup first; Insert does not check for an existing equal key.
// If the bucket already holds a different key under the same hash, the
// tracker records that a collision occurred.
func (t *Tracker[K]) Insert(hash uint64, key K, index int) {
	for _, e := range t.buckets[hash] {
		if e.key != key {
			t.collided = true
			break
		}
	}
	t.buckets[hash] = append(t.buckets[hash], entry[K]{key: key, index: index})
	t.count++
}

// HasCollision reports whether two distinct keys have ever shared a hash.
func (t *Tracker[K]) HasCollision() bool {
	return t.collided
}

// Count returns the number of keys inserted since the last Reset.
func (t *Tracker[K]) Count() int {
	return t.count
}

// Reset clears all tracked keys and the collision flag, retaining the
// bucket map's allocated capacity for reuse.
func (t *Tracker[K]) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.count = 0
	t.collided = false
}
