package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	"veilchat/internal/domain"
)

// keyInfo labels HKDF output so a seed shared with other tools yields a
// different key here.
const keyInfo = "veilchat|session-key|v1"

var errEmptySeed = errors.New("seed must not be empty")

// GenerateKey returns a fresh random session key.
func GenerateKey() (domain.Key, error) {
	var k domain.Key
	if _, err := rand.Read(k[:]); err != nil {
		return domain.Key{}, err
	}
	return k, nil
}

// DeriveKey deterministically derives a session key from a seed both peers
// know, using HKDF-SHA256.
func DeriveKey(seed string) (domain.Key, error) {
	if seed == "" {
		return domain.Key{}, errEmptySeed
	}
	var k domain.Key
	r := hkdf.New(sha256.New, []byte(seed), nil, []byte(keyInfo))
	if _, err := io.ReadFull(r, k[:]); err != nil {
		return domain.Key{}, err
	}
	return k, nil
}
