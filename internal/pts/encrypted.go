// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pts

import (
	"fmt"

	"github.com/MKhiriev/pass-the-salt/models"
)

// Encrypted is a secret whose value is stored in the store-wide encrypted
// substore. The plaintext given to [NewEncrypted] is kept only until the
// secret is added to a store.
type Encrypted struct {
	secretBase
	secret *string
}

// NewEncrypted returns an unbound encrypted secret holding secret until it
// is added to a store.
func NewEncrypted(secret string) *Encrypted {
	return &Encrypted{secretBase: newSecretBase(), secret: &secret}
}

// EncryptedFromRecord decodes an encrypted secret without looking at the
// kind tag. The value itself is not part of the record.
func EncryptedFromRecord(rec models.SecretRecord) (*Encrypted, error) {
	return &Encrypted{secretBase: baseFromRecord(rec)}, nil
}

// Kind implements [Secret].
func (e *Encrypted) Kind() models.SecretKind {
	return models.KindEncrypted
}

// Get implements [Secret]. It decrypts the whole substore and looks up the
// bound label.
func (e *Encrypted) Get() (string, error) {
	c, err := e.context()
	if err != nil {
		return "", err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	secrets, err := e.decrypt(c.store)
	if err != nil {
		return "", err
	}

	value, ok := secrets[c.label]
	if !ok {
		return "", fmt.Errorf("%w: %q does not exist in the encrypted store", ErrSubstoreDesync, c.label)
	}
	return value, nil
}

// Display implements [Secret].
func (e *Encrypted) Display() (DisplayRow, error) {
	return e.display(e.Kind())
}

// Record implements [Secret].
func (e *Encrypted) Record() (models.SecretRecord, error) {
	kind, err := kindTag(e)
	if err != nil {
		return models.SecretRecord{}, err
	}

	rec := e.recordBase()
	rec.Kind = kind
	return rec, nil
}

// add stores the pending plaintext under the bound label and forgets it.
// The substore field is only replaced once the new ciphertext exists.
func (e *Encrypted) add() error {
	c, err := e.context()
	if err != nil {
		return err
	}
	if e.secret == nil {
		return fmt.Errorf("%w: %q", ErrMissingValue, c.label)
	}

	secrets, err := e.decrypt(c.store)
	if err != nil {
		return err
	}
	secrets[c.label] = *e.secret

	if err = e.encrypt(c.store, secrets); err != nil {
		return err
	}
	e.secret = nil

	return e.secretBase.add()
}

// remove deletes the bound label from the substore. The plaintext is kept on
// the detached secret so that it can be added again, which is how a move
// carries the value to its new label.
func (e *Encrypted) remove() error {
	c, err := e.context()
	if err != nil {
		return err
	}

	secrets, err := e.decrypt(c.store)
	if err != nil {
		return err
	}

	value, ok := secrets[c.label]
	if !ok {
		return fmt.Errorf("%w: %q does not exist in the encrypted store", ErrSubstoreDesync, c.label)
	}
	delete(secrets, c.label)

	if err = e.encrypt(c.store, secrets); err != nil {
		return err
	}
	e.secret = &value

	return e.secretBase.remove()
}

// encrypt replaces the store's ciphertext with the encryption of secrets. An
// empty mapping clears the ciphertext instead of encrypting "{}".
func (e *Encrypted) encrypt(store *PassTheSalt, secrets map[string]string) error {
	if len(secrets) == 0 {
		store.secretsEncrypted = nil
		store.logger.Debug().Msg("encrypted substore cleared")
		return nil
	}

	key, err := store.masterKey()
	if err != nil {
		return err
	}

	blob, err := store.keychain.EncryptSecrets(secrets, key)
	if err != nil {
		return fmt.Errorf("encrypt secrets: %w", err)
	}
	store.secretsEncrypted = &blob
	store.logger.Debug().Int("entries", len(secrets)).Msg("encrypted substore re-encrypted")

	return nil
}

// decrypt returns the full plaintext substore, or an empty mapping when no
// ciphertext is present. Decryption failures are returned as is.
func (e *Encrypted) decrypt(store *PassTheSalt) (map[string]string, error) {
	if store.secretsEncrypted == nil || *store.secretsEncrypted == "" {
		return make(map[string]string), nil
	}

	key, err := store.masterKey()
	if err != nil {
		return nil, err
	}

	secrets, err := store.keychain.DecryptSecrets(*store.secretsEncrypted, key)
	if err != nil {
		return nil, fmt.Errorf("decrypt secrets: %w", err)
	}
	if secrets == nil {
		secrets = make(map[string]string)
	}
	return secrets, nil
}
