package models

// SecretKind is the serialization tag carried by every persisted secret
// record. Decoding dispatches on this value.
type SecretKind string

const (
	// KindEncrypted tags a secret whose value lives in the encrypted substore.
	KindEncrypted SecretKind = "encrypted"

	// KindGeneratable tags a secret regenerated from a salt and the master key.
	KindGeneratable SecretKind = "generatable"

	// KindLogin tags a generatable secret whose salt is computed from a
	// domain, a username and an iteration counter.
	KindLogin SecretKind = "generatable.login"
)
