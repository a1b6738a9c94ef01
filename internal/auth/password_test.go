package auth

import "testing"

func TestSecretHashing(t *testing.T) {
	hash, err := HashSecret("secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("secret must not be stored verbatim")
	}
	if err := CheckSecret(hash, "secret1"); err != nil {
		t.Fatalf("expected secret to match")
	}
	if err := CheckSecret(hash, "wrong"); err == nil {
		t.Fatalf("expected secret mismatch")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashSecret("secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	b, err := HashSecret("secret1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same secret must differ")
	}
}
