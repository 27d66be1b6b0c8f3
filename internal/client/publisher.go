// internal/client/publisher.go
// Package client implements the publisher side of the transform RPC: a
// persistent Ingest stream to the buffer daemon with automatic reconnect and
// jittered exponential back-off, mirroring the gateway-facing exporter the
// teacher used to ship flame graphs.
package client

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/internal/rpc"
	"github.com/smilerobotics/tf2-go/pkg/telemetry"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/smilerobotics/tf2-go/internal/client")

// Config defines connection parameters for the Publisher.
type Config struct {
	Addr         string
	AuthToken    string
	Insecure     bool // skip TLS; only for local/dev daemons
	Opts         []grpc.DialOption
	StreamRetry  backoff.BackOff
	FlushTimeout time.Duration
}

// Publisher streams batches of stamped transforms to a buffer daemon over a
// persistent Ingest call, re-establishing the stream after a failed send.
type Publisher struct {
	cfg    Config
	conn   *grpc.ClientConn
	client rpc.TransformServiceClient
	stream grpc.ClientStreamingClient[wrapperspb.BytesValue, wrapperspb.StringValue]

	closing chan struct{}
}

// NewPublisher creates and connects a Publisher. The call blocks until the
// first successful handshake.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	p := &Publisher{cfg: cfg, closing: make(chan struct{})}
	if cfg.StreamRetry == nil {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 500 * time.Millisecond
		bo.MaxInterval = 15 * time.Second
		bo.MaxElapsedTime = time.Minute
		p.cfg.StreamRetry = bo
	}
	if err := p.connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Publish sends one batch over the stream. If the send fails it tries to
// re-establish the stream (with back-off, bounded by FlushTimeout) and then
// returns the send error; the failed batch is not resent. Publisher does not
// implement pkg/tf2's Source or Sink interfaces.
func (p *Publisher) Publish(ctx context.Context, batch []tf2.StampedTransform, static bool) error {
	if len(batch) == 0 {
		return nil
	}
	ctx = telemetry.WithFramePair(ctx, batch[0].ParentFrameID, batch[0].ChildFrameID)
	ctx, span := telemetry.StartTransformSpan(ctx, tracer, "client.Publish", batch[0].ParentFrameID, batch[0].ChildFrameID)
	defer span.End()

	data, err := rpc.EncodeBatch(batch, static)
	if err != nil {
		return err
	}

	to := p.cfg.FlushTimeout
	if to == 0 {
		to = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, to)
	defer cancel()

	if err := p.stream.Send(wrapperspb.Bytes(data)); err != nil {
		span.RecordError(err)
		_ = p.reconnect(ctx)
		return err
	}
	return nil
}

// Close terminates the stream and underlying connection.
func (p *Publisher) Close() error {
	close(p.closing)
	if p.stream != nil {
		_, _ = p.stream.CloseAndRecv()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) connect(ctx context.Context) error {
	dialOpts := append([]grpc.DialOption{}, p.cfg.Opts...)
	hasCreds := false
	for _, o := range dialOpts {
		if _, ok := o.(grpc.CredsCallOption); ok {
			hasCreds = true
			break
		}
	}
	if !hasCreds {
		if p.cfg.Insecure {
			dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		} else {
			dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})))
		}
	}
	dialOpts = append(dialOpts, grpc.WithBlock())

	conn, err := grpc.DialContext(ctx, p.cfg.Addr, dialOpts...)
	if err != nil {
		return err
	}
	client := rpc.NewTransformServiceClient(conn)

	md := metadata.New(nil)
	if p.cfg.AuthToken != "" {
		md.Set("authorization", "Bearer "+p.cfg.AuthToken)
	}
	stream, err := client.Ingest(metadata.NewOutgoingContext(ctx, md))
	if err != nil {
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.client = client
	p.stream = stream
	logging.Logger().Info("publisher connected", zap.String("addr", p.cfg.Addr))
	return nil
}

func (p *Publisher) reconnect(ctx context.Context) error {
	if p.stream != nil {
		_, _ = p.stream.CloseAndRecv()
		p.stream = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}

	bo := p.cfg.StreamRetry
	bo.Reset()
	for {
		next := bo.NextBackOff()
		if next == backoff.Stop {
			return context.DeadlineExceeded
		}
		select {
		case <-time.After(next):
		case <-p.closing:
			return context.Canceled
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := p.connect(ctx); err == nil {
			return nil
		}
	}
}
