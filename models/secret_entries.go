// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateLabel is returned when a decoded secrets object repeats a key.
var ErrDuplicateLabel = errors.New("duplicate secret label")

// SecretEntry pairs a label with its persisted secret.
type SecretEntry struct {
	Label  string
	Secret SecretRecord
}

// SecretEntries is an insertion-ordered label→secret mapping. It encodes to a
// JSON object whose keys keep their slice order, which encoding/json maps
// cannot guarantee.
type SecretEntries []SecretEntry

// MarshalJSON implements [json.Marshaler].
func (e SecretEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, fmt.Errorf("marshal label %q: %w", entry.Label, err)
		}
		value, err := json.Marshal(entry.Secret)
		if err != nil {
			return nil, fmt.Errorf("marshal secret %q: %w", entry.Label, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements [json.Unmarshaler]. It walks the object token by
// token so that document order is preserved. A null value decodes to an empty
// mapping.
func (e *SecretEntries) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read secrets: %w", err)
	}
	if tok == nil {
		*e = SecretEntries{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("secrets must be a JSON object, got %v", tok)
	}

	entries := SecretEntries{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("read secret label: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("secret label must be a string, got %v", tok)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		seen[label] = struct{}{}

		var record SecretRecord
		if err = dec.Decode(&record); err != nil {
			return fmt.Errorf("decode secret %q: %w", label, err)
		}
		entries = append(entries, SecretEntry{Label: label, Secret: record})
	}

	if _, err = dec.Token(); err != nil {
		return fmt.Errorf("read secrets end: %w", err)
	}

	*e = entries
	return nil
}

// Labels returns the labels in order.
func (e SecretEntries) Labels() []string {
	labels := make([]string, 0, len(e))
	for _, entry := range e {
		labels = append(labels, entry.Label)
	}
	return labels
}
