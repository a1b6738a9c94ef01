package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	accountID := "acct-123"

	tok, err := GenerateToken(accountID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := AccountIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("AccountIDFromToken error: %v", err)
	}
	if got != accountID {
		t.Fatalf("accountID mismatch: got %q want %q", got, accountID)
	}
}

func TestAccountIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("a1", []byte("secret"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := AccountIDFromToken(tok, []byte("secret")); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestAccountIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("a2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := AccountIDFromToken(tok, []byte("wrong-secret")); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestAccountIDFromToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := AccountIDFromToken("not.a.jwt", []byte("k")); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
