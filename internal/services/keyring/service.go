package keyring

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"veilchat/internal/crypto"
	"veilchat/internal/domain"
	"veilchat/internal/store"
)

const (
	// minPassphraseLength is the minimum number of characters in a passphrase.
	minPassphraseLength = 12

	sourceRandom   = "random"
	sourceSeed     = "seed"
	sourceImported = "imported"
)

var (
	// ErrWeakPassphrase is returned when a passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrKeyExists is returned when a key record is already present and
	// overwriting was not requested.
	ErrKeyExists = errors.New("a key record already exists (use --force to replace it)")
)

// Service manages the shared key record using a backing store.
type Service struct {
	store    domain.KeyStore
	transfer store.Transfer
	now      func() time.Time
}

// New returns a keyring service backed by the given store.
func New(s domain.KeyStore, t store.Transfer) *Service {
	return &Service{store: s, transfer: t, now: time.Now}
}

// GenerateKey creates a random key, saves it (sealed when passphrase is
// set) and returns the record with its fingerprint.
func (s *Service) GenerateKey(passphrase string, force bool) (domain.KeyRecord, domain.Fingerprint, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return domain.KeyRecord{}, "", err
	}
	return s.save(passphrase, key, sourceRandom, force)
}

// DeriveKey derives the key from a seed both peers share and saves it.
// Running it with the same seed on each side yields the same key.
func (s *Service) DeriveKey(passphrase, seed string, force bool) (domain.KeyRecord, domain.Fingerprint, error) {
	key, err := crypto.DeriveKey(seed)
	if err != nil {
		return domain.KeyRecord{}, "", err
	}
	return s.save(passphrase, key, sourceSeed, force)
}

// LoadKey returns the stored key.
func (s *Service) LoadKey(passphrase string) (domain.Key, error) {
	rec, err := s.store.LoadKey(passphrase)
	if err != nil {
		return domain.Key{}, err
	}
	return rec.Key, nil
}

// FingerprintKey returns the short fingerprint both operators compare out of band.
func (s *Service) FingerprintKey(passphrase string) (domain.Fingerprint, error) {
	key, err := s.LoadKey(passphrase)
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(key), nil
}

// ExportKey seals the stored record into an armored transfer file.
func (s *Service) ExportKey(passphrase, transferPassphrase string) ([]byte, error) {
	if !isSecurePassphrase(transferPassphrase) {
		return nil, ErrWeakPassphrase
	}
	rec, err := s.store.LoadKey(passphrase)
	if err != nil {
		return nil, err
	}
	return s.transfer.Seal(rec, transferPassphrase)
}

// ImportKey opens a transfer file and stores the key it carries.
func (s *Service) ImportKey(
	passphrase, transferPassphrase string,
	armored []byte,
	force bool,
) (domain.Fingerprint, error) {
	rec, err := s.transfer.Open(armored, transferPassphrase)
	if err != nil {
		return "", err
	}
	_, fp, err := s.save(passphrase, rec.Key, sourceImported, force)
	return fp, err
}

func (s *Service) save(
	passphrase string,
	key domain.Key,
	source string,
	force bool,
) (domain.KeyRecord, domain.Fingerprint, error) {
	if passphrase != "" && !isSecurePassphrase(passphrase) {
		return domain.KeyRecord{}, "", ErrWeakPassphrase
	}
	if !force {
		exists, err := s.store.HasKey()
		if err != nil {
			return domain.KeyRecord{}, "", err
		}
		if exists {
			return domain.KeyRecord{}, "", ErrKeyExists
		}
	}

	rec := domain.KeyRecord{Key: key, CreatedUTC: s.now().UTC().Unix(), Source: source}
	if err := s.store.SaveKey(passphrase, rec); err != nil {
		return domain.KeyRecord{}, "", err
	}
	return rec, crypto.Fingerprint(key), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len([]rune(passphrase)) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
