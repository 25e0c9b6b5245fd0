package keyring_test

import (
	"errors"
	"path/filepath"
	"testing"

	"veilchat/internal/domain"
	"veilchat/internal/services/keyring"
	"veilchat/internal/store"
)

const strongPass = "Sup3r-Secret-Pass"

func newService(t *testing.T) *keyring.Service {
	t.Helper()
	ks := store.NewKeyFileStore(filepath.Join(t.TempDir(), store.KeyFilename))
	return keyring.New(ks, store.Transfer{WorkFactor: 10})
}

func TestGenerateKey_ThenFingerprint(t *testing.T) {
	svc := newService(t)

	rec, fp, err := svc.GenerateKey(strongPass, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.Key.IsZero() || fp == "" {
		t.Fatal("empty key or fingerprint")
	}
	got, err := svc.FingerprintKey(strongPass)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if got != fp {
		t.Fatalf("fingerprint changed: %s vs %s", got, fp)
	}
}

func TestGenerateKey_RefusesOverwrite(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.GenerateKey("", false); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := svc.GenerateKey("", false); !errors.Is(err, keyring.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
	if _, _, err := svc.GenerateKey("", true); err != nil {
		t.Fatalf("forced generate: %v", err)
	}
}

func TestGenerateKey_WeakPassphrase(t *testing.T) {
	if _, _, err := newService(t).GenerateKey("short", false); !errors.Is(err, keyring.ErrWeakPassphrase) {
		t.Fatalf("expected ErrWeakPassphrase, got %v", err)
	}
}

func TestDeriveKey_SameSeedSameKey(t *testing.T) {
	a, b := newService(t), newService(t)

	_, fpA, err := a.DeriveKey("", "shared seed words", false)
	if err != nil {
		t.Fatalf("derive a: %v", err)
	}
	_, fpB, err := b.DeriveKey(strongPass, "shared seed words", false)
	if err != nil {
		t.Fatalf("derive b: %v", err)
	}
	if fpA != fpB {
		t.Fatalf("fingerprints differ: %s vs %s", fpA, fpB)
	}
}

func TestExportImport_MovesKey(t *testing.T) {
	src, dst := newService(t), newService(t)

	_, fp, err := src.GenerateKey("", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	armored, err := src.ExportKey("", strongPass)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := dst.ImportKey("", strongPass, armored, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if got != fp {
		t.Fatalf("imported fingerprint %s, want %s", got, fp)
	}

	srcKey, _ := src.LoadKey("")
	dstKey, _ := dst.LoadKey("")
	if srcKey != dstKey {
		t.Fatal("keys differ after import")
	}
}

func TestExport_WeakTransferPassphrase(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.GenerateKey("", false); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ExportKey("", "weak"); !errors.Is(err, keyring.ErrWeakPassphrase) {
		t.Fatalf("expected ErrWeakPassphrase, got %v", err)
	}
}

func TestLoadKey_Missing(t *testing.T) {
	if _, err := newService(t).LoadKey(""); !errors.Is(err, domain.ErrKeyUnavailable) {
		t.Fatalf("expected ErrKeyUnavailable, got %v", err)
	}
}
