// internal/config/config.go
// Centralised configuration loader for the tf2 daemon and CLI. Consumers
// (cmd/tf2bufferd, cmd/tf2ctl) call Load() to read config from environment
// variables prefixed "TF2" plus an optional file path; unknown keys in the
// file are ignored.
//
// The implementation purposefully avoids a bespoke YAML/flag parser; it
// relies on github.com/spf13/viper, already a dependency of the CLI layer.
package config

import (
	"crypto/tls"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable shared by the daemon and the publishing/
// watching CLI, merged from defaults, an optional config file and TF2_*
// environment variables (highest precedence).
type Config struct {
	// Buffer ------------------------------------------------------------
	CacheDurationSec int32 `mapstructure:"cache_duration_sec"` // default 10, per pkg/tf2.DefaultCacheDuration

	// Transport -----------------------------------------------------------
	ListenAddr string `mapstructure:"listen_addr"` // gRPC ingest/lookup bind address
	HTTPAddr   string `mapstructure:"http_addr"`   // /watch and /metrics bind address

	// Auth ------------------------------------------------------------
	AuthToken string `mapstructure:"auth_token"` // static bearer token, "" disables
	JWTSecret string `mapstructure:"jwt_secret"` // HMAC secret, takes precedence over AuthToken
	JWTIssuer string `mapstructure:"jwt_issuer"`

	// Cross-replica relay (optional) --------------------------------------
	RedisAddr    string `mapstructure:"redis_addr"`    // "" disables the relay
	RedisChannel string `mapstructure:"redis_channel"` // pub/sub channel name

	// TLS -----------------------------------------------------------
	TLSCertPath string      `mapstructure:"tls_cert"`
	TLSKeyPath  string      `mapstructure:"tls_key"`
	TLSConfig   *tls.Config `mapstructure:"-"`

	// Client (publisher) ----------------------------------------------
	PublishEvery time.Duration `mapstructure:"publish_every"`

	// Offline replay recording (optional) ----------------------------------
	RecordDir      string `mapstructure:"record_dir"` // "" disables batch recording
	RecordCompress bool   `mapstructure:"record_compress"`
}

// DefaultConfig returns production-ready defaults suitable for local dev.
func DefaultConfig() Config {
	return Config{
		CacheDurationSec: 10,
		ListenAddr:       ":4317",
		HTTPAddr:         ":8080",
		RedisChannel:     "tf2:transforms",
		PublishEvery:     100 * time.Millisecond,
	}
}

// Load reads configuration from env + optional file. filePath may be empty,
// in which case only defaults and environment variables apply.
func Load(filePath string) Config {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("TF2")
	v.AutomaticEnv()
	// Unmarshal only sees keys viper already knows, so every field's key is
	// bound to its TF2_* variable explicitly.
	for _, key := range []string{
		"cache_duration_sec", "listen_addr", "http_addr", "auth_token", "jwt_secret",
		"jwt_issuer", "redis_addr", "redis_channel", "tls_cert", "tls_key",
		"publish_every", "record_dir", "record_compress",
	} {
		_ = v.BindEnv(key)
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		_ = v.ReadInConfig() // missing/malformed file is treated as non-fatal
	}

	_ = v.Unmarshal(&cfg)

	certPath := v.GetString("tls_cert")
	keyPath := v.GetString("tls_key")
	if certPath == "" {
		certPath = cfg.TLSCertPath
	}
	if keyPath == "" {
		keyPath = cfg.TLSKeyPath
	}
	if certPath != "" && keyPath != "" {
		if cert, err := tls.LoadX509KeyPair(certPath, keyPath); err == nil {
			cfg.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		}
	}

	return cfg
}
