package store_test

import (
	"path/filepath"
	"testing"

	"veilchat/internal/domain"
	"veilchat/internal/store"
)

func TestEnrollment_SaveLoad_OK(t *testing.T) {
	var es domain.EnrollmentStore = store.NewEnrollmentFileStore(
		filepath.Join(t.TempDir(), store.EnrollmentFilename))

	if _, ok, err := es.LoadEnrollment(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	e := domain.Enrollment{Issuer: "veilchat", Account: "alice", Secret: "JBSWY3DPEHPK3PXP", CreatedUTC: 42}
	if err := es.SaveEnrollment(e); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := es.LoadEnrollment()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got != e {
		t.Fatalf("got %+v, want %+v", got, e)
	}
}
