package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"veilchat/internal/domain"
)

const (
	// FrameVersion is the current frame format version.
	FrameVersion = 1

	// NonceBytes is the size of the random per-frame nonce.
	NonceBytes = chacha20poly1305.NonceSizeX

	// Overhead is the number of bytes a frame adds to its plaintext.
	Overhead = 1 + NonceBytes + chacha20poly1305.Overhead
)

// Channel seals and opens frames under one shared key.
//
// Frame layout: version(1) || nonce(24) || ciphertext||tag. The version
// byte is authenticated as associated data. Nonces are drawn at random,
// which XChaCha20's 192-bit nonce makes safe for the life of a key.
//
// A Channel holds no mutable state and is safe for concurrent use.
type Channel struct {
	aead cipher.AEAD
}

// NewChannel returns a Channel keyed by key.
func NewChannel(key domain.Key) (*Channel, error) {
	if key.IsZero() {
		return nil, domain.ErrKeyUnavailable
	}
	aead, err := chacha20poly1305.NewX(key.Slice())
	if err != nil {
		return nil, err
	}
	return &Channel{aead: aead}, nil
}

// Encrypt seals plaintext into a new frame.
func (c *Channel) Encrypt(plaintext []byte) ([]byte, error) {
	frame := make([]byte, 1+NonceBytes, Overhead+len(plaintext))
	frame[0] = FrameVersion
	if _, err := rand.Read(frame[1:]); err != nil {
		return nil, fmt.Errorf("frame nonce: %w", err)
	}
	return c.aead.Seal(frame, frame[1:], plaintext, frame[:1]), nil
}

// Decrypt opens a frame produced by Encrypt under the same key.
func (c *Channel) Decrypt(frame []byte) ([]byte, error) {
	if len(frame) < Overhead {
		return nil, fmt.Errorf("%w: frame too short (%d bytes)", domain.ErrIntegrity, len(frame))
	}
	if frame[0] != FrameVersion {
		return nil, fmt.Errorf("%w: unsupported frame version %d", domain.ErrIntegrity, frame[0])
	}
	nonce := frame[1 : 1+NonceBytes]
	pt, err := c.aead.Open(nil, nonce, frame[1+NonceBytes:], frame[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIntegrity, err)
	}
	return pt, nil
}

// Compile-time assertion that Channel implements domain.Cipher.
var _ domain.Cipher = (*Channel)(nil)
