// pkg/tf2/ingest.go
// The ingestion adapter contract: the minimal interfaces an external
// transport must satisfy to feed batches into a Buffer and to serve lookups
// out of one. pkg/tf2 never imports a transport package itself; adapters
// (internal/rpc, internal/relay, internal/client) depend on tf2, not the
// other way around.
package tf2

import "context"

// Source is implemented by an external transport that delivers batches of
// stamped transforms to a Buffer. The dynamic channel (static=false) treats
// each edge as sample-based and time-bounded by the buffer's cache
// duration; the static channel (static=true) treats each edge's newest
// sample as valid at all times.
type Source interface {
    // Run consumes batches from the transport until ctx is cancelled or the
    // transport is exhausted, applying each one via dst.HandleIncoming.
    Run(ctx context.Context, dst *Buffer) error
}

// Sink is implemented by an external transport that serves Buffer lookups to
// consumers (e.g. a query RPC server). Sink implementations typically hold a
// *Buffer and translate wire requests into LookupTransform/
// LookupTransformWithTimeTravel calls.
type Sink interface {
    // Serve blocks, handling consumer requests against src until ctx is
    // cancelled.
    Serve(ctx context.Context, src *Buffer) error
}
