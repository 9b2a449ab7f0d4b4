// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MasterRecord holds the salted one-way hash of the master password. The
// plaintext is never persisted.
type MasterRecord struct {
	Salt string `json:"salt"`
	Hash string `json:"hash"`
}

// ConfigRecord is the store-wide configuration.
type ConfigRecord struct {
	// Owner is prepended to the master password when building the master
	// key, so two owners sharing a password still get distinct secrets.
	Owner *string `json:"owner,omitempty"`

	// Master enables master password verification on open.
	Master *MasterRecord `json:"master,omitempty"`
}

// StoreRecord is the complete persisted document of a store.
type StoreRecord struct {
	// Modified is the last time the store was mutated.
	Modified *time.Time `json:"modified,omitempty"`

	// Config holds the owner and master verification record.
	Config ConfigRecord `json:"config"`

	// Secrets maps labels to secret records in insertion order.
	Secrets SecretEntries `json:"secrets"`

	// SecretsEncrypted is the ciphertext of the encrypted substore. It is
	// nil exactly when the substore is empty.
	SecretsEncrypted *string `json:"secrets_encrypted,omitempty"`

	// Version is the format/application version that wrote the document.
	Version string `json:"version"`
}
