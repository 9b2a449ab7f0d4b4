package pts

import "errors"

var (
	// ErrConfiguration is returned when runtime configuration required by an
	// operation (master password source, default path) is missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrContext is returned when a secret is used outside of a store.
	ErrContext = errors.New("secret is not in a store context")

	// ErrLabel covers label-space violations: duplicates, missing labels,
	// ambiguous or unmatched patterns and invalid patterns.
	ErrLabel = errors.New("label error")

	// ErrDeserialization is returned when a persisted record cannot be
	// turned into a secret or a store (e.g. an unknown kind tag).
	ErrDeserialization = errors.New("deserialization error")

	// ErrSerialization is returned when a secret cannot be written out.
	ErrSerialization = errors.New("serialization error")

	// ErrSubstoreDesync is returned when a label bound to an encrypted secret
	// is absent from the decrypted substore. It means the persisted store was
	// modified outside of this package and is fatal to the operation.
	ErrSubstoreDesync = errors.New("encrypted substore is out of sync")

	// ErrMissingValue is returned when an encrypted secret without a
	// plaintext value is added to a store.
	ErrMissingValue = errors.New("secret has no value to store")
)
