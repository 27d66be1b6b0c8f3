package auth

import (
	"testing"
	"time"
)

func TestSignerVerifierRoundTrip(t *testing.T) {
	signer := NewSigner([]byte("shared-secret"), "tf2ctl", time.Minute)
	claims := signer.Claims("publisher-1", map[string]any{"scope": "ingest"})

	tok, err := signer.Sign(claims)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	verifier := NewVerifier([]byte("shared-secret"), "tf2ctl")
	got, err := verifier.ParseAndVerify(tok)
	if err != nil {
		t.Fatalf("ParseAndVerify() error = %v", err)
	}
	if got["sub"] != "publisher-1" {
		t.Fatalf("sub claim = %v, want publisher-1", got["sub"])
	}
	if got["scope"] != "ingest" {
		t.Fatalf("scope claim = %v, want ingest", got["scope"])
	}
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	signer := NewSigner([]byte("secret-a"), "tf2ctl", time.Minute)
	tok, err := signer.Sign(signer.Claims("watcher-1", nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	verifier := NewVerifier([]byte("secret-b"), "tf2ctl")
	if _, err := verifier.ParseAndVerify(tok); err == nil {
		t.Fatal("ParseAndVerify() succeeded with mismatched secret, want error")
	}
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	signer := NewSigner([]byte("shared-secret"), "tf2ctl", time.Minute)
	signer.clock = func() time.Time { return time.Unix(0, 0) }
	tok, err := signer.Sign(signer.Claims("publisher-1", nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	verifier := NewVerifier([]byte("shared-secret"), "tf2ctl")
	if _, err := verifier.ParseAndVerify(tok); err != ErrExpiredToken {
		t.Fatalf("ParseAndVerify() error = %v, want ErrExpiredToken", err)
	}
}

func TestVerifierRejectsIssuerMismatch(t *testing.T) {
	signer := NewSigner([]byte("shared-secret"), "other-issuer", time.Minute)
	tok, err := signer.Sign(signer.Claims("publisher-1", nil))
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	verifier := NewVerifier([]byte("shared-secret"), "tf2ctl")
	if _, err := verifier.ParseAndVerify(tok); err != ErrIssuerMismatch {
		t.Fatalf("ParseAndVerify() error = %v, want ErrIssuerMismatch", err)
	}
}
