// cmd/tf2bufferd/main.go
// Binary entrypoint for the standalone tf2 buffer daemon. It exposes a gRPC
// TransformService for publishers and consumers, a /watch WebSocket endpoint
// and an optional /metrics scrape endpoint, and optionally relays ingested
// batches to sibling replicas over Redis pub/sub. The process is configured
// via CLI flags or TF2_* environment variables with sane defaults for local
// testing.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smilerobotics/tf2-go/internal/config"
	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/internal/relay"
	"github.com/smilerobotics/tf2-go/internal/server"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml/toml/json)")
	listen := flag.String("listen", "", "gRPC listen address (overrides config/env)")
	httpListen := flag.String("http-listen", "", "HTTP listen address (overrides config/env)")
	disableMetrics := flag.Bool("no-metrics", false, "disable the Prometheus /metrics endpoint")
	recordDir := flag.String("record-dir", "", "optional directory to record every ingested batch to, for offline replay")
	recordCompress := flag.Bool("record-compress", false, "gzip recorded batches")
	flag.Parse()

	cfg := config.Load(*configFile)
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *httpListen != "" {
		cfg.HTTPAddr = *httpListen
	}
	if *recordDir != "" {
		cfg.RecordDir = *recordDir
	}
	if *recordCompress {
		cfg.RecordCompress = true
	}

	lg, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	logging.Set(lg)
	defer lg.Sync()

	shared := tf2.NewBufferWithDuration(tf2.Duration{Sec: cfg.CacheDurationSec})

	var (
		redisCli *redis.Client
		rl       *relay.Relay
	)
	if cfg.RedisAddr != "" {
		redisCli = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rl = relay.New(redisCli, cfg.RedisChannel)
	}

	srv := server.New(server.Config{
		ListenAddr:     cfg.ListenAddr,
		TLSConfig:      cfg.TLSConfig,
		AuthToken:      cfg.AuthToken,
		JWT:            server.JWTConfig{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer},
		RecordDir:      cfg.RecordDir,
		RecordCompress: cfg.RecordCompress,
		Relay:          rl,
	}, shared)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		lg.Info("signal received, shutting down")
		cancel()
	}()

	httpSrv := srv.StartHTTP(server.HTTPConfig{
		ListenAddr:    cfg.HTTPAddr,
		EnableMetrics: !*disableMetrics,
	})
	defer func() {
		_ = httpSrv.Shutdown(context.Background())
	}()

	if rl != nil {
		defer redisCli.Close()
		go func() {
			if err := rl.Run(ctx, shared); err != nil && ctx.Err() == nil {
				lg.Warn("relay subscriber stopped", zap.Error(err))
			}
		}()
	}

	// Optional pprof for local debugging; ignore errors.
	go func() {
		_ = http.ListenAndServe("localhost:6060", nil)
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		lg.Fatal("serve", zap.Error(err))
	}

	lg.Info("goodbye")
}
