// pkg/tf2/errors.go
// The errors below form a closed taxonomy of the ways a lookup can fail; they
// are distinct types with no shared LookupError interface. Nothing in
// this package returns a bare string error or a soft/partial result: every
// failure is one of the typed errors below, propagated unchanged to the
// caller (see the propagation policy in the spec's error-handling design).
package tf2

import "fmt"

// ErrCouldNotAcquireLock is returned by the non-blocking TryLookupTransform/
// TryHandleIncoming variants on Buffer when the lock is currently held by
// another goroutine. The arithmetic core (TfBuffer, EdgeHistory) never
// raises it; it is purely a concurrency-wrapper concern.
var ErrCouldNotAcquireLock = fmt.Errorf("tf2: could not acquire lock")

// ErrLookupInPast is returned when an edge has samples but the requested
// time precedes the oldest one held.
type ErrLookupInPast struct {
    Requested    Time
    OldestSample StampedTransform
}

func (e *ErrLookupInPast) Error() string {
    return fmt.Sprintf("tf2: lookup at %s is before the oldest sample at %s", e.Requested, e.OldestSample.Stamp)
}

// ErrLookupInFuture is returned when an edge has samples but the requested
// time exceeds the newest one held.
type ErrLookupInFuture struct {
    NewestSample StampedTransform
    Requested    Time
}

func (e *ErrLookupInFuture) Error() string {
    return fmt.Sprintf("tf2: lookup at %s is after the newest sample at %s", e.Requested, e.NewestSample.Stamp)
}

// ErrCouldNotFindTransform is returned when no path of jointly-valid edges
// connects From to To at the requested time. IndexSnapshot is a shallow copy
// of the child-frame index at the moment of failure, included to aid
// debugging; callers may ignore it.
type ErrCouldNotFindTransform struct {
    From, To      string
    IndexSnapshot map[string][]string
}

func (e *ErrCouldNotFindTransform) Error() string {
    return fmt.Sprintf("tf2: could not find transform from %q to %q", e.From, e.To)
}
