package app

import (
	"veilchat/internal/domain"
	"veilchat/internal/services/keyring"
	"veilchat/internal/store"
)

// Wire bundles the stores and services commands use.
type Wire struct {
	KeyStore    *store.KeyFileStore
	Keys        domain.KeyService
	Enrollments domain.EnrollmentStore
}

// NewWire constructs the dependency graph from cfg. Paths must already be
// resolved (see Config.ResolvePaths).
func NewWire(cfg Config) *Wire {
	keyStore := store.NewKeyFileStore(cfg.KeyFile)
	return &Wire{
		KeyStore:    keyStore,
		Keys:        keyring.New(keyStore, store.Transfer{}),
		Enrollments: store.NewEnrollmentFileStore(cfg.EnrollmentFile),
	}
}
