// internal/server/watch.go
// HTTP listener exposing:
//   - /watch    – WebSocket endpoint streaming a single (from, to) lookup to
//     a subscriber at a fixed poll interval, JSON-encoded
//   - /metrics  – optional Prometheus scrape endpoint
//
// The listener is deliberately separate from the gRPC server so deployments
// can route HTTP and gRPC traffic through different ports or load balancers.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smilerobotics/tf2-go/internal/metrics"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
	"go.uber.org/zap"
)

// HTTPConfig controls the HTTP listener.
type HTTPConfig struct {
	ListenAddr    string
	EnableMetrics bool
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// StartHTTP starts an HTTP server in its own goroutine and returns it so the
// caller can shut it down.
func (s *Server) StartHTTP(cfg HTTPConfig) *http.Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 0 // /watch is a long-lived stream; no write deadline
	}

	mux := http.NewServeMux()
	mux.Handle("/watch", s.HTTPAuthMiddleware(http.HandlerFunc(s.handleWatch)))
	if cfg.EnableMetrics {
		metrics.Register()
		mux.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger().Warn("http listener error", zap.Error(err))
		}
	}()
	s.Logger().Info("HTTP listener started", zap.String("addr", cfg.ListenAddr))
	return srv
}

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watchFrame is one JSON message pushed to a /watch subscriber.
type watchFrame struct {
	Transform *wireTransform `json:"transform,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type wireTransform struct {
	ParentFrameID string  `json:"parent_frame_id"`
	ChildFrameID  string  `json:"child_frame_id"`
	Sec           int32   `json:"sec"`
	Nanosec       uint32  `json:"nanosec"`
	TX            float64 `json:"tx"`
	TY            float64 `json:"ty"`
	TZ            float64 `json:"tz"`
	RX            float64 `json:"rx"`
	RY            float64 `json:"ry"`
	RZ            float64 `json:"rz"`
	RW            float64 `json:"rw"`
}

func toWireTransform(s tf2.StampedTransform) *wireTransform {
	return &wireTransform{
		ParentFrameID: s.ParentFrameID,
		ChildFrameID:  s.ChildFrameID,
		Sec:           s.Stamp.Sec,
		Nanosec:       s.Stamp.Nanosec,
		TX:            s.Transform.Translation.X,
		TY:            s.Transform.Translation.Y,
		TZ:            s.Transform.Translation.Z,
		RX:            s.Transform.Rotation.X,
		RY:            s.Transform.Rotation.Y,
		RZ:            s.Transform.Rotation.Z,
		RW:            s.Transform.Rotation.W,
	}
}

// handleWatch upgrades to a WebSocket and pushes LookupTransform(from, to,
// latest) results at a fixed interval until the client disconnects. Query
// parameters: from, to (required), hz (optional poll rate, default 10).
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "from and to query parameters are required", http.StatusBadRequest)
		return
	}

	interval := defaultWatchInterval
	if hzStr := r.URL.Query().Get("hz"); hzStr != "" {
		if hz, err := strconv.ParseFloat(hzStr, 64); err == nil && hz > 0 {
			interval = time.Duration(float64(time.Second) / hz)
		}
	}

	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger().Warn("watch upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.WatchSubscribers.Inc()
	defer metrics.WatchSubscribers.Dec()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.drainClose(conn, cancel)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame := s.lookupFrame(from, to)
			if err := conn.WriteJSON(frame); err != nil {
				s.Logger().Debug("watch write", zap.Error(err))
				return
			}
		}
	}
}

// drainClose reads (and discards) incoming frames so the connection's read
// deadline machinery notices client-initiated closes, then cancels cancel.
func (s *Server) drainClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) lookupFrame(from, to string) watchFrame {
	result, err := s.buf.LookupTransform(from, to, tf2.Time{})
	if err != nil {
		return watchFrame{Error: err.Error()}
	}
	return watchFrame{Transform: toWireTransform(result)}
}
