// pkg/tf2/edge_history.go
// EdgeHistory is the sorted, time-bounded sample history for one directed
// (parent, child) edge. Insertion keeps the slice sorted by stamp via binary
// search; eviction is anchored to the newest stamp currently held, not
// wall-clock time, so that replaying recorded data is deterministic.
package tf2

import "sort"

// EdgeHistory holds the time-ordered samples for a single directed edge plus
// the parameters that govern how it is queried and trimmed.
type EdgeHistory struct {
    static        bool
    cacheDuration Duration
    samples       []StampedTransform
}

// NewEdgeHistory constructs an empty history. static pins "return the newest
// sample for every query time" semantics (§4.3); cacheDuration bounds the
// stamp range kept for a non-static edge.
func NewEdgeHistory(static bool, cacheDuration Duration) *EdgeHistory {
    return &EdgeHistory{static: static, cacheDuration: cacheDuration}
}

// search returns the index of the sample whose stamp equals t (ok=true), or
// the insertion index that keeps the slice sorted (ok=false).
func (h *EdgeHistory) search(t Time) (idx int, ok bool) {
    ns := t.ToNanos()
    i := sort.Search(len(h.samples), func(i int) bool {
        return h.samples[i].Stamp.ToNanos() >= ns
    })
    if i < len(h.samples) && h.samples[i].Stamp.ToNanos() == ns {
        return i, true
    }
    return i, false
}

// Insert adds sample to the history, replacing any existing sample at the
// identical ns-equivalent stamp, then evicts anything older than
// newestStamp-cacheDuration for non-static edges.
func (h *EdgeHistory) Insert(sample StampedTransform) {
    idx, exact := h.search(sample.Stamp)
    if exact {
        h.samples[idx] = sample
    } else {
        h.samples = append(h.samples, StampedTransform{})
        copy(h.samples[idx+1:], h.samples[idx:])
        h.samples[idx] = sample
    }

    if h.static {
        return
    }

    newest := h.samples[len(h.samples)-1].Stamp
    cutoffNs := newest.ToNanos() - h.cacheDuration.ToNanos()
    if cutoffNs <= 0 {
        return
    }
    dropIdx := sort.Search(len(h.samples), func(i int) bool {
        return h.samples[i].Stamp.ToNanos() >= cutoffNs
    })
    if dropIdx > 0 {
        h.samples = append(h.samples[:0], h.samples[dropIdx:]...)
    }
}

// NewestStamp returns the most recently inserted sample's stamp, if any.
func (h *EdgeHistory) NewestStamp() (Time, bool) {
    if len(h.samples) == 0 {
        return Time{}, false
    }
    return h.samples[len(h.samples)-1].Stamp, true
}

// HasValidTransform reports whether the history is non-empty and (static, or
// t is the latest sentinel, or t falls within [oldest, newest]).
func (h *EdgeHistory) HasValidTransform(t Time) bool {
    if len(h.samples) == 0 {
        return false
    }
    if h.static || t.IsLatest() {
        return true
    }
    first := h.samples[0].Stamp
    last := h.samples[len(h.samples)-1].Stamp
    return !t.Before(first) && !t.After(last)
}

// SampleAt returns the transform valid at t, interpolating between
// neighboring samples when t falls strictly between two of them.
func (h *EdgeHistory) SampleAt(t Time) (StampedTransform, error) {
    if len(h.samples) == 0 {
        // Only reachable if a caller bypasses HasValidTransform, which every
        // TfBuffer path already checks before sampling an edge.
        return StampedTransform{}, &ErrLookupInFuture{Requested: t}
    }

    if t.IsLatest() || h.static {
        return h.samples[len(h.samples)-1], nil
    }

    idx, exact := h.search(t)
    if exact {
        return h.samples[idx], nil
    }
    if idx == 0 {
        return StampedTransform{}, &ErrLookupInPast{Requested: t, OldestSample: h.samples[0]}
    }
    if idx >= len(h.samples) {
        return StampedTransform{}, &ErrLookupInFuture{NewestSample: h.samples[len(h.samples)-1], Requested: t}
    }

    before := h.samples[idx-1]
    after := h.samples[idx]
    totalNs := after.Stamp.Sub(before.Stamp).ToNanos()
    elapsedNs := t.Sub(before.Stamp).ToNanos()
    weight := 1 - float64(elapsedNs)/float64(totalNs)

    interp := Interpolate(before.Transform, after.Transform, weight)
    return StampedTransform{
        ParentFrameID: after.ParentFrameID,
        ChildFrameID:  after.ChildFrameID,
        Stamp:         t,
        Transform:     interp,
    }, nil
}

// Len reports the number of samples currently retained, mostly useful for
// tests asserting eviction/replacement behaviour.
func (h *EdgeHistory) Len() int { return len(h.samples) }
