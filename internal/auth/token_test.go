package auth

import (
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService with a fixed secret so
// tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestSign_ReturnsJWTShape(t *testing.T) {
	ts := newTestTokenService(t)

	signed, err := ts.Sign("session-token-abc", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if signed == "" {
		t.Fatal("Sign() returned empty value")
	}

	// A JWT is header.payload.signature
	if parts := strings.Count(signed, "."); parts != 2 {
		t.Errorf("Sign() value doesn't look like a JWT (expected 2 dots, got %d)", parts)
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	signed, err := ts.Sign("cv37rs3pp9olc6atsptg", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	got, err := ts.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != "cv37rs3pp9olc6atsptg" {
		t.Errorf("Verify() = %q, want the session token back", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	ts := newTestTokenService(t)

	signed, err := ts.Sign("session-token-abc", -time.Minute)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := ts.Verify(signed); err == nil {
		t.Fatal("Verify() should reject an expired cookie")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)

	other, err := NewTokenService("a-completely-different-secret!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	signed, err := other.Sign("session-token-abc", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if _, err := ts.Verify(signed); err == nil {
		t.Fatal("Verify() should reject a cookie signed with another secret")
	}
}

func TestVerify_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Verify("not-a-jwt"); err == nil {
		t.Fatal("Verify() should reject a malformed cookie")
	}
}
