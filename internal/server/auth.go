// internal/server/auth.go
// Authentication helpers for the buffer daemon. Supports two modes:
//  1. Static bearer token (shared secret) – cheap check for internal clusters.
//     Enabled when Config.AuthToken is non-empty.
//  2. JWT HMAC-SHA256 token – validates signature, issuer and expiry via
//     pkg/auth.Verifier when Config.JWTSecret is set (takes precedence over
//     the plain AuthToken).
//
// The gRPC server registers unary and stream interceptors that call
// validateBearer(); the HTTP listener attaches the same check as middleware
// to protect /watch.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/smilerobotics/tf2-go/pkg/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// JWTConfig optionally enables JWT auth.
type JWTConfig struct {
	Secret []byte // HMAC secret; if empty JWT auth is disabled
	Issuer string // expected iss claim; empty means any issuer accepted
}

type jwtHelper struct {
	secret   []byte
	verifier *auth.Verifier
}

func newJWTHelper(cfg JWTConfig) jwtHelper {
	if len(cfg.Secret) == 0 {
		return jwtHelper{}
	}
	return jwtHelper{secret: cfg.Secret, verifier: auth.NewVerifier(cfg.Secret, cfg.Issuer)}
}

// validateBearer validates an Authorization header value against the JWT
// verifier (when configured) or the static token.
func (s *Server) validateBearer(token string) error {
	token = strings.TrimPrefix(token, "Bearer ")
	if len(s.jwt.secret) > 0 {
		_, err := s.jwt.verifier.ParseAndVerify(token)
		if err != nil {
			return ErrInvalidToken
		}
		return nil
	}
	if s.cfg.AuthToken == "" {
		return nil // auth disabled
	}
	if token != s.cfg.AuthToken {
		return ErrInvalidToken
	}
	return nil
}

func (s *Server) unaryAuthInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if err := s.authFromContext(ctx); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func (s *Server) streamAuthInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := s.authFromContext(ss.Context()); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func (s *Server) authFromContext(ctx context.Context) error {
	if s.cfg.AuthToken == "" && len(s.jwt.secret) == 0 {
		return nil
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ErrUnauthenticated
	}
	return s.validateBearer(vals[0])
}

// HTTPAuthMiddleware wraps an http.Handler and enforces bearer auth.
func (s *Server) HTTPAuthMiddleware(next http.Handler) http.Handler {
	if s.cfg.AuthToken == "" && len(s.jwt.secret) == 0 {
		return next // auth disabled
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.validateBearer(r.Header.Get("Authorization")); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var (
	ErrUnauthenticated = status.Error(codes.Unauthenticated, "missing auth token")
	ErrInvalidToken    = status.Error(codes.PermissionDenied, "invalid auth token")
)
