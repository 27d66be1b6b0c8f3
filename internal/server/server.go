// internal/server/server.go
// Package server hosts the gRPC front door (internal/rpc.TransformService)
// for the buffer daemon: publishers Ingest batches, consumers Lookup
// transforms. Retention and cross-replica relay are delegated to sibling
// packages (internal/relay); this package only wires the transport.
package server

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/internal/recorder"
	"github.com/smilerobotics/tf2-go/internal/relay"
	"github.com/smilerobotics/tf2-go/internal/rpc"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Config parameterises a Server.
type Config struct {
	ListenAddr string      // host:port to bind the gRPC listener
	TLSConfig  *tls.Config // nil to serve over plaintext
	AuthToken  string      // optional static bearer token ("" means open)
	JWT        JWTConfig   // optional JWT auth, takes precedence over AuthToken

	// RecordDir, when set, makes the server write every ingested batch to
	// this directory via internal/recorder.FileRecorder for offline replay.
	RecordDir      string
	RecordCompress bool

	// Relay, when set, makes the server fan every successfully ingested
	// batch out to sibling replicas over Redis pub/sub after it is applied
	// locally, completing the cross-replica relay internal/relay.Relay.Run
	// only does the receiving half of.
	Relay *relay.Relay
}

// Server wraps a pkg/tf2.Buffer behind the TransformService gRPC API.
type Server struct {
	cfg     Config
	buf     *tf2.Buffer
	rpcSrv  *rpc.Server
	grpcSrv *grpc.Server
	jwt     jwtHelper
}

// New returns a ready-to-serve Server bound to buf. The caller must invoke
// ListenAndServe.
func New(cfg Config, buf *tf2.Buffer) *Server {
	s := &Server{
		cfg: cfg,
		buf: buf,
		jwt: newJWTHelper(cfg.JWT),
	}
	s.rpcSrv = rpc.NewServer(buf)
	if cfg.RecordDir != "" {
		rec, err := recorder.NewFileRecorder(recorder.FileConfig{Dir: cfg.RecordDir, Compress: cfg.RecordCompress})
		if err != nil {
			logging.Sugar().Warnw("recorder disabled", "err", err)
		} else {
			s.rpcSrv.Recorder = func(batch []tf2.StampedTransform, static bool) {
				if err := rec.Record(batch, static); err != nil {
					logging.Sugar().Warnw("record batch", "err", err)
				}
			}
		}
	}
	if cfg.Relay != nil {
		s.rpcSrv.Relayer = func(batch []tf2.StampedTransform, static bool) {
			cfg.Relay.Publish(context.Background(), batch, static)
		}
	}

	var opts []grpc.ServerOption
	if cfg.TLSConfig != nil {
		opts = append(opts, grpc.Creds(credentials.NewTLS(cfg.TLSConfig)))
	}
	opts = append(opts,
		grpc.UnaryInterceptor(s.unaryAuthInterceptor()),
		grpc.StreamInterceptor(s.streamAuthInterceptor()),
	)

	s.grpcSrv = grpc.NewServer(opts...)
	rpc.RegisterTransformServiceServer(s.grpcSrv, s.rpcSrv)
	return s
}

// Buffer returns the underlying buffer, e.g. so the HTTP /watch handler and
// relay subscriber can share it with the gRPC server.
func (s *Server) Buffer() *tf2.Buffer { return s.buf }

// ListenAndServe blocks, serving the gRPC API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.grpcSrv.GracefulStop()
		_ = ln.Close()
	}()

	logging.Sugar().Infow("buffer daemon listening", "addr", ln.Addr().String())
	return s.grpcSrv.Serve(ln)
}

// Logger returns the *zap.Logger used by the server (delegates to global).
func (s *Server) Logger() *zap.Logger { return logging.Logger() }

// defaultWatchInterval is how often /watch polls the buffer when a client
// does not specify a rate.
const defaultWatchInterval = 100 * time.Millisecond
