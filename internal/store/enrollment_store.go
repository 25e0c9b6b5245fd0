package store

import (
	"os"
	"path/filepath"
	"sync"

	"veilchat/internal/domain"
)

// EnrollmentFilename is the default name of the TOTP enrollment file.
const EnrollmentFilename = "enrollment.json"

// EnrollmentFileStore persists the operator's authenticator enrollment.
type EnrollmentFileStore struct {
	path string
	mu   sync.Mutex
}

// NewEnrollmentFileStore returns an EnrollmentFileStore backed by path.
func NewEnrollmentFileStore(path string) *EnrollmentFileStore {
	return &EnrollmentFileStore{path: path}
}

// SaveEnrollment stores e, replacing any previous enrollment.
func (s *EnrollmentFileStore) SaveEnrollment(e domain.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return writeJSON(s.path, e, 0o600)
}

// LoadEnrollment returns the stored enrollment; ok is false when none exists.
func (s *EnrollmentFileStore) LoadEnrollment() (domain.Enrollment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var e domain.Enrollment
	if err := readJSON(s.path, &e); err != nil {
		return domain.Enrollment{}, false, err
	}
	return e, e.Secret != "", nil
}

// Compile-time assertion that EnrollmentFileStore implements domain.EnrollmentStore.
var _ domain.EnrollmentStore = (*EnrollmentFileStore)(nil)
