package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"veilchat/internal/domain"
)

// KeyFilename is the default name of the key record inside the home directory.
const KeyFilename = "session.key"

// ErrPassphraseRequired is returned when a sealed key record is loaded
// without a passphrase.
var ErrPassphraseRequired = errors.New("key record is sealed: passphrase required")

// KeyFileStore persists the shared key record to a single file.
//
// Without a passphrase the file is the plain JSON record
// ({"key": "<base64url>", ...}). With one, the record is sealed in a
// passphrase blob (scrypt + ChaCha20-Poly1305) before it is written.
type KeyFileStore struct {
	path string
	mu   sync.Mutex
}

// NewKeyFileStore returns a KeyFileStore that reads and writes path.
func NewKeyFileStore(path string) *KeyFileStore {
	return &KeyFileStore{path: path}
}

// Path returns the file backing the store.
func (s *KeyFileStore) Path() string { return s.path }

// SaveKey writes rec, replacing any existing record atomically.
func (s *KeyFileStore) SaveKey(passphrase string, rec domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	out := raw
	if passphrase != "" {
		N, r, p := scryptParamsDefault()
		if out, err = encrypt(passphrase, raw, N, r, p); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return writeFile(s.path, out, 0o600)
}

// LoadKey reads the record. A missing file or a record without key
// material reports domain.ErrKeyUnavailable.
func (s *KeyFileStore) LoadKey(passphrase string) (domain.KeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil {
		return domain.KeyRecord{}, err
	}
	if b == nil {
		return domain.KeyRecord{}, fmt.Errorf("%w: no key record at %s", domain.ErrKeyUnavailable, s.path)
	}

	if isSealed(b) {
		if passphrase == "" {
			return domain.KeyRecord{}, fmt.Errorf("%w: %w", domain.ErrKeyUnavailable, ErrPassphraseRequired)
		}
		if b, err = decrypt(passphrase, b); err != nil {
			return domain.KeyRecord{}, fmt.Errorf("%w: %w", domain.ErrKeyUnavailable, err)
		}
	}

	var rec domain.KeyRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.KeyRecord{}, fmt.Errorf("%w: %w", domain.ErrKeyUnavailable, err)
	}
	if rec.Key.IsZero() {
		return domain.KeyRecord{}, fmt.Errorf("%w: empty key in %s", domain.ErrKeyUnavailable, s.path)
	}
	return rec, nil
}

// HasKey reports whether a record file exists.
func (s *KeyFileStore) HasKey() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// isSealed tells a passphrase blob from a plain record.
func isSealed(b []byte) bool {
	var probe struct {
		Cipher []byte `json:"cipher"`
	}
	return json.Unmarshal(b, &probe) == nil && len(probe.Cipher) > 0
}

// Compile-time assertion that KeyFileStore implements domain.KeyStore.
var _ domain.KeyStore = (*KeyFileStore)(nil)
