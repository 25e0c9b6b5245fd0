// Package crypto exposes the minimal primitives used by veilchat.
//
// Contents
//
//   - The frame cipher (Channel): XChaCha20-Poly1305 with a random nonce per
//     frame, failing closed with domain.ErrIntegrity
//   - Session key generation and seed derivation (GenerateKey, DeriveKey)
//   - Short key fingerprints for out-of-band comparison (Fingerprint)
//
// # Notes
//
// Keys are fixed-size arrays defined in internal/domain to avoid accidental
// reallocations. Callers should wipe key copies with memzero when practical.
package crypto
