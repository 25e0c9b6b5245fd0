package domain

import (
	"encoding/base64"
	"fmt"
)

// KeySize is the length in bytes of the shared session key.
const KeySize = 32

// Key is the symmetric secret shared by both peers before a session starts.
type Key [KeySize]byte

func (k Key) Slice() []byte { return k[:] }

// IsZero reports whether k holds no key material.
func (k Key) IsZero() bool { return k == Key{} }

// MarshalText encodes the key as URL-safe base64, the format used by key files.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(base64.URLEncoding.EncodeToString(k[:])), nil
}

// UnmarshalText accepts URL-safe base64 with or without padding.
func (k *Key) UnmarshalText(b []byte) error {
	raw, err := base64.URLEncoding.DecodeString(string(b))
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(string(b))
	}
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}
	if len(raw) != KeySize {
		return fmt.Errorf("key: want %d bytes, got %d", KeySize, len(raw))
	}
	copy(k[:], raw)
	return nil
}

// Fingerprint is a short printable digest of a key.
type Fingerprint string

func (f Fingerprint) String() string { return string(f) }

// KeyRecord is the persisted key material. The "key" field keeps the
// layout of plain key files ({"key": "<base64url>"}).
type KeyRecord struct {
	Key        Key    `json:"key"`
	CreatedUTC int64  `json:"created_utc,omitempty"`
	Source     string `json:"source,omitempty"` // "random" or "seed"
}

// Enrollment is the operator's TOTP enrollment.
type Enrollment struct {
	Issuer     string `json:"issuer"`
	Account    string `json:"account"`
	Secret     string `json:"secret"`
	CreatedUTC int64  `json:"created_utc"`
}

// Role selects which side of the conversation speaks first.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Peer returns the label used for messages coming from the other side.
func (r Role) Peer() string {
	if r == RoleServer {
		return "Client"
	}
	return "Server"
}

// Turn is the half-duplex turn state of a session.
type Turn int

const (
	WaitingForLocalInput Turn = iota
	WaitingForRemoteReply
)

func (t Turn) String() string {
	switch t {
	case WaitingForLocalInput:
		return "waiting-for-local-input"
	case WaitingForRemoteReply:
		return "waiting-for-remote-reply"
	default:
		return fmt.Sprintf("turn(%d)", int(t))
	}
}
