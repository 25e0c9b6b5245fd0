// Package store provides file-based persistence for veilchat's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking, and every write goes through a temp file and rename.
// Files typically live under the user's configured home directory.
//
// The package includes:
//   - The shared key record (KeyFileStore), optionally passphrase-sealed
//   - The operator's TOTP enrollment (EnrollmentFileStore)
//   - Armored age transfer files for moving a key between peers (Transfer)
package store
