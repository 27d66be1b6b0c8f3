// internal/rpc/wire.go
// Server glues TransformServiceServer onto a *tf2.Buffer: every Ingest batch
// is decoded and applied via Buffer.HandleIncoming, and every Lookup request
// is decoded, resolved via Buffer.LookupTransform(WithTimeTravel), and its
// typed pkg/tf2 error (if any) is mapped onto a gRPC status code so clients
// can branch without depending on this package's wire format.
package rpc

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/smilerobotics/tf2-go/internal/metrics"
	"github.com/smilerobotics/tf2-go/internal/util"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ClientStreamingServer is a type alias (not a new type) for the generic
// stream type the generated-code pattern would spell out inline; aliasing it
// here keeps Server.Ingest's signature readable while remaining identical to
// what TransformServiceServer requires.
type ClientStreamingServer = grpc.ClientStreamingServer[wrapperspb.BytesValue, wrapperspb.StringValue]

// Server implements TransformServiceServer against an in-process Buffer.
type Server struct {
	UnimplementedTransformServiceServer

	Buf *tf2.Buffer

	// Recorder, when set, is called with every successfully applied batch
	// after HandleIncoming returns. Errors are logged by the caller that
	// configured it, not surfaced to the publisher. Typically bound to
	// internal/recorder.FileRecorder.Record.
	Recorder func(batch []tf2.StampedTransform, static bool)

	// Relayer, when set, is called with every successfully applied batch
	// after HandleIncoming returns, so it can be fanned out to sibling
	// replicas. Typically bound to internal/relay.Relay.Publish.
	Relayer func(batch []tf2.StampedTransform, static bool)
}

// NewServer returns a Server bound to buf.
func NewServer(buf *tf2.Buffer) *Server {
	return &Server{Buf: buf}
}

// Ingest consumes a client-streaming sequence of encoded batches, applying
// each one as it arrives so a slow publisher never blocks others on the same
// buffer (HandleIncoming holds the write lock only for the batch's duration).
func (s *Server) Ingest(stream ClientStreamingServer) error {
	var lastID string
	for {
		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		batch, static, err := DecodeBatch(msg.GetValue())
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		s.Buf.HandleIncoming(batch, static)
		if s.Recorder != nil {
			s.Recorder(batch, static)
		}
		if s.Relayer != nil {
			s.Relayer(batch, static)
		}
		metrics.BufferEdges.Set(float64(s.Buf.EdgeCount()))
		metrics.IngestBatchesTotal.Inc()
		channel := "dynamic"
		if static {
			channel = "static"
		}
		metrics.SamplesTotal.WithLabelValues(channel).Add(float64(len(batch)))
		lastID = util.MustNew()
	}
	return stream.SendAndClose(wrapperspb.String(lastID))
}

// Lookup resolves one encoded lookup (or time-travel lookup) request.
func (s *Server) Lookup(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	start := time.Now()
	defer func() { metrics.LookupDurationSeconds.Observe(time.Since(start).Seconds()) }()

	req, err := decodeLookupRequest(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	var (
		result    tf2.StampedTransform
		lookupErr error
	)
	if req.TimeTravel != nil {
		result, lookupErr = s.Buf.LookupTransformWithTimeTravel(
			req.To, tf2.Time{Sec: req.Sec, Nanosec: req.Nanosec},
			req.From, tf2.Time{Sec: req.TimeTravel.FromSec, Nanosec: req.TimeTravel.FromNanosec},
			req.TimeTravel.Fixed,
		)
	} else {
		result, lookupErr = s.Buf.LookupTransform(req.From, req.To, tf2.Time{Sec: req.Sec, Nanosec: req.Nanosec})
	}
	if lookupErr != nil {
		return nil, statusFromLookupError(lookupErr)
	}

	data, err := encodeLookupResponse(result)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(data), nil
}

// statusFromLookupError maps the closed pkg/tf2 lookup-error taxonomy onto
// gRPC status codes and records the corresponding metric.
func statusFromLookupError(err error) error {
	switch e := err.(type) {
	case *tf2.ErrLookupInPast:
		metrics.ObserveLookupError(metrics.ErrorKindLookupInPast)
		return status.Error(codes.OutOfRange, e.Error())
	case *tf2.ErrLookupInFuture:
		metrics.ObserveLookupError(metrics.ErrorKindLookupInFuture)
		return status.Error(codes.OutOfRange, e.Error())
	case *tf2.ErrCouldNotFindTransform:
		metrics.ObserveLookupError(metrics.ErrorKindCouldNotFindTransform)
		return status.Error(codes.NotFound, e.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
