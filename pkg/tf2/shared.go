// pkg/tf2/shared.go
// Buffer is a shared handle around a TfBuffer granting many concurrent
// readers (lookups) or one writer (an ingested batch) at a time, the same
// RWMutex shape used by the teacher's retention ring buffer and subscriber
// map. Suspension points never occur inside the critical section: lock
// acquisition may block, but all arithmetic once inside is non-blocking.
package tf2

import "sync"

// Buffer wraps a TfBuffer with readers-writer exclusion so that ingestion
// (from one goroutine) and lookup (from many) can proceed concurrently.
type Buffer struct {
    mu  sync.RWMutex
    buf *TfBuffer
}

// NewBuffer wraps a fresh TfBuffer with DefaultCacheDuration retention.
func NewBuffer() *Buffer {
    return &Buffer{buf: NewTfBuffer()}
}

// NewBufferWithDuration wraps a fresh TfBuffer with the given retention.
func NewBufferWithDuration(cacheDuration Duration) *Buffer {
    return &Buffer{buf: NewTfBufferWithDuration(cacheDuration)}
}

// HandleIncoming acquires the writer role for the duration of applying one
// batch, bounding writer hold time to O(batch_size * log n).
func (b *Buffer) HandleIncoming(batch []StampedTransform, static bool) {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.buf.HandleIncoming(batch, static)
}

// TryHandleIncoming behaves like HandleIncoming but never blocks: if the
// lock is currently held it returns ErrCouldNotAcquireLock immediately.
func (b *Buffer) TryHandleIncoming(batch []StampedTransform, static bool) error {
    if !b.mu.TryLock() {
        return ErrCouldNotAcquireLock
    }
    defer b.mu.Unlock()
    b.buf.HandleIncoming(batch, static)
    return nil
}

// LookupTransform acquires the reader role for the duration of the
// traversal and composition, allowing unlimited concurrent readers.
func (b *Buffer) LookupTransform(from, to string, t Time) (StampedTransform, error) {
    b.mu.RLock()
    defer b.mu.RUnlock()
    return b.buf.LookupTransform(from, to, t)
}

// TryLookupTransform behaves like LookupTransform but never blocks: if the
// lock is currently held for writing it returns ErrCouldNotAcquireLock.
func (b *Buffer) TryLookupTransform(from, to string, t Time) (StampedTransform, error) {
    if !b.mu.TryRLock() {
        return StampedTransform{}, ErrCouldNotAcquireLock
    }
    defer b.mu.RUnlock()
    return b.buf.LookupTransform(from, to, t)
}

// LookupTransformWithTimeTravel is the read-locked equivalent of
// TfBuffer.LookupTransformWithTimeTravel.
func (b *Buffer) LookupTransformWithTimeTravel(to string, time2 Time, from string, time1 Time, fixed string) (StampedTransform, error) {
    b.mu.RLock()
    defer b.mu.RUnlock()
    return b.buf.LookupTransformWithTimeTravel(to, time2, from, time1, fixed)
}

// EdgeCount returns the number of directed edges currently held by the
// wrapped buffer, acquiring the reader role.
func (b *Buffer) EdgeCount() int {
    b.mu.RLock()
    defer b.mu.RUnlock()
    return b.buf.EdgeCount()
}
