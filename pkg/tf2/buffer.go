// pkg/tf2/buffer.go
// TfBuffer is the frame graph: a directed (parent -> child) adjacency index
// paired with a per-edge EdgeHistory, supporting ingestion, path search and
// chained, time-interpolated lookups. TfBuffer does not police topology —
// producers may introduce cycles; the buffer never creates one on its own
// because every inserted edge is stored with its inverse.
//
// TfBuffer is not safe for concurrent use by itself; Buffer (shared.go) wraps
// one behind a readers-writer lock for that purpose.
package tf2

// DefaultCacheDuration is the retention window used when a TfBuffer is
// constructed with NewTfBuffer.
var DefaultCacheDuration = Duration{Sec: 10}

// TfBuffer is a directed graph of named frames whose edges carry
// time-sampled rigid-transform histories with bounded retention.
type TfBuffer struct {
    childIndex    map[string]map[string]struct{}
    edges         map[edgeKey]*EdgeHistory
    cacheDuration Duration
}

// NewTfBuffer constructs a buffer with DefaultCacheDuration retention.
func NewTfBuffer() *TfBuffer {
    return NewTfBufferWithDuration(DefaultCacheDuration)
}

// NewTfBufferWithDuration constructs a buffer with the given retention
// window for every non-static edge created from this point on.
func NewTfBufferWithDuration(cacheDuration Duration) *TfBuffer {
    return &TfBuffer{
        childIndex:    make(map[string]map[string]struct{}),
        edges:         make(map[edgeKey]*EdgeHistory),
        cacheDuration: cacheDuration,
    }
}

// HandleIncoming ingests a batch of stamped transforms. For each sample it
// adds both the sample and its inverse, which is how the graph becomes
// traversable in either direction without a separate path-reversal step.
// Ingestion is infallible from the buffer's perspective: a malformed sample
// is never rejected.
func (b *TfBuffer) HandleIncoming(batch []StampedTransform, static bool) {
    for _, sample := range batch {
        b.Add(sample, static)
        b.Add(Inverse(sample), static)
    }
}

// Add upserts one sample into the edge (sample.ParentFrameID ->
// sample.ChildFrameID), creating the edge's history (and child-index entry)
// on first use. The static flag is fixed at edge creation; later inserts on
// an existing edge do not change it.
//
// TODO: detect whether a new edge would introduce a cycle in the child
// index; the buffer currently stores whatever producers send, trusting them
// not to contradict each other.
func (b *TfBuffer) Add(sample StampedTransform, static bool) {
    children, ok := b.childIndex[sample.ParentFrameID]
    if !ok {
        children = make(map[string]struct{})
        b.childIndex[sample.ParentFrameID] = children
    }
    children[sample.ChildFrameID] = struct{}{}

    key := edgeKey{Parent: sample.ParentFrameID, Child: sample.ChildFrameID}
    history, ok := b.edges[key]
    if !ok {
        history = NewEdgeHistory(static, b.cacheDuration)
        b.edges[key] = history
    }
    history.Insert(sample)
}

// LookupTransform returns the rigid transform from frame "from" to frame
// "to" at time t, chaining through whatever intermediate frames a valid path
// requires. t.IsLatest() means "use the newest data available on each edge
// traversed".
func (b *TfBuffer) LookupTransform(from, to string, t Time) (StampedTransform, error) {
    path, err := b.retrieveTransformPath(from, to, t)
    if err != nil {
        return StampedTransform{}, err
    }

    transforms := make([]Transform, 0, len(path))
    first := from
    for _, intermediate := range path {
        history := b.edges[edgeKey{Parent: first, Child: intermediate}]
        sample, err := history.SampleAt(t)
        if err != nil {
            return StampedTransform{}, err
        }
        transforms = append(transforms, sample.Transform)
        first = intermediate
    }

    final := Chain(transforms)
    final.Rotation = final.Rotation.normalized()
    return StampedTransform{
        ParentFrameID: from,
        ChildFrameID:  to,
        Stamp:         t,
        Transform:     final,
    }, nil
}

// LookupTransformWithTimeTravel returns the transform that maps a point
// known in "from" at time1 into "to" at time2, treating fixed as a
// world-stationary reference: T = lookup(to, fixed, time2) *
// inverse(lookup(from, fixed, time1)). The returned stamp is time1 and the
// frames are (from -> to).
func (b *TfBuffer) LookupTransformWithTimeTravel(to string, time2 Time, from string, time1 Time, fixed string) (StampedTransform, error) {
    tf1, err := b.LookupTransform(from, fixed, time1)
    if err != nil {
        return StampedTransform{}, err
    }
    tf2, err := b.LookupTransform(to, fixed, time2)
    if err != nil {
        return StampedTransform{}, err
    }

    inv1 := Inverse(tf1)
    final := Chain([]Transform{tf2.Transform, inv1.Transform})
    final.Rotation = final.Rotation.normalized()
    return StampedTransform{
        ParentFrameID: from,
        ChildFrameID:  to,
        Stamp:         time1,
        Transform:     final,
    }, nil
}

// retrieveTransformPath runs a BFS from "from" over the child-set index,
// expanding an edge (u,v) only when its history currently reports valid at
// t, and reconstructs the path via parent pointers. BFS is used (rather than
// DFS) so that, among multiple valid paths, a shortest one is preferred,
// minimizing error accumulation; any valid path is an acceptable answer.
//
// The returned slice is the sequence of intermediate frame ids after "from"
// and ending at "to" (a direct edge yields a single-element path [to]).
func (b *TfBuffer) retrieveTransformPath(from, to string, t Time) ([]string, error) {
    visited := map[string]struct{}{from: {}}
    parents := make(map[string]string)
    frontier := []string{from}

    for len(frontier) > 0 {
        current := frontier[0]
        frontier = frontier[1:]
        if current == to {
            break
        }
        for child := range b.childIndex[current] {
            if _, seen := visited[child]; seen {
                continue
            }
            history, ok := b.edges[edgeKey{Parent: current, Child: child}]
            if !ok || !history.HasValidTransform(t) {
                continue
            }
            visited[child] = struct{}{}
            parents[child] = current
            frontier = append(frontier, child)
        }
    }

    var path []string
    node := to
    for node != from {
        path = append(path, node)
        parent, ok := parents[node]
        if !ok {
            return nil, &ErrCouldNotFindTransform{From: from, To: to, IndexSnapshot: b.snapshotIndex()}
        }
        node = parent
    }
    reversePath(path)
    return path, nil
}

func reversePath(path []string) {
    for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
        path[i], path[j] = path[j], path[i]
    }
}

// EdgeCount returns the number of directed (parent, child) edges currently
// held, e.g. for exporting as a gauge metric.
func (b *TfBuffer) EdgeCount() int {
    return len(b.edges)
}

// snapshotIndex returns a shallow copy of the child-frame index, attached to
// CouldNotFindTransform errors to aid debugging.
func (b *TfBuffer) snapshotIndex() map[string][]string {
    out := make(map[string][]string, len(b.childIndex))
    for parent, children := range b.childIndex {
        list := make([]string, 0, len(children))
        for child := range children {
            list = append(list, child)
        }
        out[parent] = list
    }
    return out
}
