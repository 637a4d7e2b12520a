package table

import "sync"

// Cache holds the full record set for one view. Every mutation builds
// a fresh slice and swaps it under the lock, so a slice handed out by
// Snapshot is never modified afterwards and derived computations stay
// consistent without holding the lock.
type Cache[T any] struct {
	mu  sync.RWMutex
	id  func(T) int64
	rec []T
	gen uint64
}

// NewCache builds a cache keyed by the given id accessor.
func NewCache[T any](id func(T) int64) *Cache[T] {
	return &Cache[T]{id: id, rec: []T{}}
}

// Replace installs a freshly fetched record set, dropping the previous
// one entirely.
func (c *Cache[T]) Replace(recs []T) {
	next := make([]T, len(recs))
	copy(next, recs)
	c.mu.Lock()
	c.rec = next
	c.gen++
	c.mu.Unlock()
}

// Clear empties the cache. Used when a load fails so the view shows an
// empty table rather than stale records.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.rec = []T{}
	c.gen++
	c.mu.Unlock()
}

// Snapshot returns the current record set. The returned slice is
// immutable by convention and must not be modified by callers.
func (c *Cache[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec
}

// Len returns the current record count.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rec)
}

// Generation increments on every mutation. View-level page-reset
// policy keys off it to detect that the underlying set changed.
func (c *Cache[T]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// ApplyUpdate replaces the record with rec's id in place. A record
// whose id is no longer present is a silent no-op; the return value
// lets callers count the miss.
func (c *Cache[T]) ApplyUpdate(rec T) bool {
	target := c.id(rec)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rec {
		if c.id(c.rec[i]) != target {
			continue
		}
		next := make([]T, len(c.rec))
		copy(next, c.rec)
		next[i] = rec
		c.rec = next
		c.gen++
		return true
	}
	return false
}

// ApplyInsert appends a server-created record. No duplicate check: the
// backend owns id uniqueness.
func (c *Cache[T]) ApplyInsert(rec T) {
	c.mu.Lock()
	next := make([]T, len(c.rec), len(c.rec)+1)
	copy(next, c.rec)
	c.rec = append(next, rec)
	c.gen++
	c.mu.Unlock()
}

// ApplyDelete removes the record with the given id. Absent ids are a
// no-op.
func (c *Cache[T]) ApplyDelete(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rec {
		if c.id(c.rec[i]) != id {
			continue
		}
		next := make([]T, 0, len(c.rec)-1)
		next = append(next, c.rec[:i]...)
		next = append(next, c.rec[i+1:]...)
		c.rec = next
		c.gen++
		return true
	}
	return false
}
