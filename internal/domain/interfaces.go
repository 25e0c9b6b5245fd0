package domain

import "context"

// KeyStore persists the shared key record.
type KeyStore interface {
	SaveKey(passphrase string, rec KeyRecord) error
	LoadKey(passphrase string) (KeyRecord, error)
	HasKey() (bool, error)
}

// EnrollmentStore persists the operator's authenticator enrollment.
type EnrollmentStore interface {
	SaveEnrollment(e Enrollment) error
	LoadEnrollment() (Enrollment, bool, error)
}

// KeyService creates, loads and moves the shared key record.
type KeyService interface {
	GenerateKey(passphrase string, force bool) (KeyRecord, Fingerprint, error)
	DeriveKey(passphrase, seed string, force bool) (KeyRecord, Fingerprint, error)
	LoadKey(passphrase string) (Key, error)
	FingerprintKey(passphrase string) (Fingerprint, error)
	ExportKey(passphrase, transferPassphrase string) ([]byte, error)
	ImportKey(passphrase, transferPassphrase string, armored []byte, force bool) (Fingerprint, error)
}

// Authenticator verifies the local operator. It reports false with a nil
// error when the operator was checked and rejected.
type Authenticator interface {
	Authenticate(ctx context.Context) (bool, error)
}

// Cipher turns plaintext into self-contained frames and back.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(frame []byte) ([]byte, error)
}

// LineReader is the local input source of a session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Printer is the local output sink of a session.
type Printer interface {
	Message(from, text string)
	Notice(format string, args ...any)
}
