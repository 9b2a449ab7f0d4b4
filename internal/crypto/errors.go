package crypto

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned by Derive for an unknown version.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm version")

	// ErrInvalidLength is returned by Derive for an output length outside
	// 0..MaxDeriveLength.
	ErrInvalidLength = errors.New("invalid output length")

	// ErrDecryption is returned when the substore cannot be opened, either
	// because the master key is wrong or the blob is corrupted.
	ErrDecryption = errors.New("unable to decrypt secrets")
)
