package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"veilchat/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a key.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars). Two
// peers compare fingerprints out of band to confirm they share a key.
func Fingerprint(k domain.Key) domain.Fingerprint {
	sum := sha256.Sum256(k[:])
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
