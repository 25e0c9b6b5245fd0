package crypto_test

import (
	"testing"

	"veilchat/internal/crypto"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	a, err := crypto.DeriveKey("correct horse battery staple")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	b, err := crypto.DeriveKey("correct horse battery staple")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if a != b {
		t.Fatal("same seed produced different keys")
	}
	c, err := crypto.DeriveKey("another seed")
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if a == c {
		t.Fatal("different seeds produced the same key")
	}
	if crypto.Fingerprint(a) != crypto.Fingerprint(b) {
		t.Fatal("fingerprint mismatch for equal keys")
	}
	if len(crypto.Fingerprint(a)) != 20 {
		t.Fatalf("fingerprint length = %d, want 20", len(crypto.Fingerprint(a)))
	}
}

func TestDeriveKey_EmptySeed(t *testing.T) {
	if _, err := crypto.DeriveKey(""); err == nil {
		t.Fatal("expected error for empty seed")
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	a, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	b, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if a == b || a.IsZero() {
		t.Fatal("GenerateKey returned duplicate or zero keys")
	}
}
