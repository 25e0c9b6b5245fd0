package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"veilchat/internal/domain"
)

// DefaultTransferWorkFactor is the scrypt work factor (log2 N) used for
// transfer files.
const DefaultTransferWorkFactor = 18

// Transfer moves a key record between peers as an armored age file
// protected by a transfer passphrase.
type Transfer struct {
	// WorkFactor is the scrypt log2 N used when sealing. Opening accepts
	// any factor up to the larger of WorkFactor and the default.
	WorkFactor int
}

var errEmptyTransferPassphrase = errors.New("transfer passphrase must not be empty")

// Seal encrypts rec into an ASCII-armored age file.
func (t Transfer) Seal(rec domain.KeyRecord, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, errEmptyTransferPassphrase
	}
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, err
	}
	recipient.SetWorkFactor(t.workFactor())

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	aw := armor.NewWriter(&out)
	w, err := age.Encrypt(aw, recipient)
	if err != nil {
		return nil, fmt.Errorf("age encrypt: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if err := aw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Open decrypts an armored transfer file produced by Seal.
func (t Transfer) Open(armored []byte, passphrase string) (domain.KeyRecord, error) {
	if passphrase == "" {
		return domain.KeyRecord{}, errEmptyTransferPassphrase
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return domain.KeyRecord{}, err
	}
	identity.SetMaxWorkFactor(max(t.workFactor(), DefaultTransferWorkFactor))

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(armored)), identity)
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("age decrypt: %w", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return domain.KeyRecord{}, fmt.Errorf("age decrypt: %w", err)
	}

	var rec domain.KeyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.KeyRecord{}, err
	}
	if rec.Key.IsZero() {
		return domain.KeyRecord{}, fmt.Errorf("%w: transfer file holds no key", domain.ErrKeyUnavailable)
	}
	return rec, nil
}

func (t Transfer) workFactor() int {
	if t.WorkFactor > 0 {
		return t.WorkFactor
	}
	return DefaultTransferWorkFactor
}
