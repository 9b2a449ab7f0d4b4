package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService bundles every cryptographic primitive the secret store
// consumes. It knows nothing about labels, files or the CLI.
//
// Scheme:
//
//	value     = Derive(salt, masterKey, version, length)   (generatable secrets)
//	salt,hash = HashPassword(master, "")                  (master verification)
//	blob      = EncryptSecrets(substore, masterKey)        (encrypted secrets)
//	substore  = DecryptSecrets(blob, masterKey)
type KeyChainService interface {
	// Derive deterministically produces a secret value from a non-secret salt
	// and the master key. version selects the derivation revision so that
	// values generated by older revisions stay reproducible. length 0 keeps
	// the revision's default output length.
	Derive(salt, key string, version, length int) (string, error)

	// HashPassword computes a salted one-way hash of password. When salt is
	// empty a new random salt is generated; otherwise the given salt is reused
	// so that a stored hash can be recomputed for verification.
	HashPassword(password, salt string) (outSalt, hash string, err error)

	// EncryptSecrets serializes the whole label→plaintext mapping and seals it
	// with a key derived from key. The result is a printable blob.
	EncryptSecrets(secrets map[string]string, key string) (string, error)

	// DecryptSecrets opens a blob produced by EncryptSecrets. A wrong key or a
	// corrupted blob always yields an error wrapping ErrDecryption, never an
	// empty mapping.
	DecryptSecrets(blob, key string) (map[string]string, error)
}
