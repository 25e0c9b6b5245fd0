package store_test

import (
	"bytes"
	"testing"

	"veilchat/internal/store"
)

func TestTransfer_SealOpen_OK(t *testing.T) {
	tr := store.Transfer{WorkFactor: 10}
	rec := testRecord()

	armored, err := tr.Seal(rec, "transfer-pass")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !bytes.HasPrefix(armored, []byte("-----BEGIN AGE ENCRYPTED FILE-----")) {
		t.Fatalf("not armored: %q", armored[:min(len(armored), 40)])
	}

	got, err := tr.Open(armored, "transfer-pass")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got != rec {
		t.Fatal("mismatch after open")
	}
}

func TestTransfer_WrongPassphrase_Fails(t *testing.T) {
	tr := store.Transfer{WorkFactor: 10}
	armored, err := tr.Seal(testRecord(), "right")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := tr.Open(armored, "wrong"); err == nil {
		t.Fatal("expected error with wrong transfer passphrase")
	}
}

func TestTransfer_EmptyPassphrase_Fails(t *testing.T) {
	if _, err := (store.Transfer{}).Seal(testRecord(), ""); err == nil {
		t.Fatal("expected error for empty passphrase")
	}
}
