// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pts implements the secret store engine: a deterministic secret
// manager that either regenerates a secret from a label-specific salt and the
// master key, or decrypts it from a single store-wide encrypted substore.
//
// Secret variants form a closed set:
//   - [Generatable]: value = Derive(salt, masterKey, algorithm)
//   - [Login]: a generatable secret whose salt is "domain|username|iteration"
//   - [Encrypted]: value lives in the encrypted substore
//
// A secret is unbound until [PassTheSalt.Add] (or [FromRecord]) attaches a
// label and a store to it. Every operation that needs the master key or the
// substore fails with [ErrContext] on an unbound secret.
//
// The substore is never updated in place: each mutation decrypts the whole
// mapping, applies exactly one change and encrypts the whole mapping again.
// A PassTheSalt serializes its own operations with a mutex, so the
// read-modify-write of the ciphertext is one critical section.
package pts
