// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AlgorithmRecord is the persisted form of a generation algorithm.
type AlgorithmRecord struct {
	// Version selects the derivation revision. Defaults to 1.
	Version int `json:"version"`

	// Length optionally truncates the generated value.
	Length *int `json:"length,omitempty"`
}

// SecretRecord is the persisted form of any secret variant. Only the fields
// belonging to the variant named by Kind are populated; the others are nil
// and omitted from the document.
//
// Field order follows the order in which fields are declared so that saved
// documents diff cleanly.
type SecretRecord struct {
	// Modified is the last time any field of the secret changed.
	Modified *time.Time `json:"modified,omitempty"`

	// Salt is set for KindGeneratable only. Logins compute their salt.
	Salt *string `json:"salt,omitempty"`

	// Algorithm is set for KindGeneratable and KindLogin.
	Algorithm *AlgorithmRecord `json:"algorithm,omitempty"`

	// Domain, Username and Iteration are set for KindLogin.
	Domain    *string `json:"domain,omitempty"`
	Username  *string `json:"username,omitempty"`
	Iteration *int    `json:"iteration,omitempty"`

	// Kind is the variant tag.
	Kind SecretKind `json:"kind"`
}
