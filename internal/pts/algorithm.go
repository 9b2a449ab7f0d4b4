package pts

import (
	"fmt"

	"github.com/MKhiriev/pass-the-salt/internal/crypto"
	"github.com/MKhiriev/pass-the-salt/models"
)

// Algorithm selects how a generatable secret is derived. It is immutable
// once attached to a secret.
type Algorithm struct {
	// Version is the derivation revision, starting at 1.
	Version int

	// Length truncates the output when positive. Zero keeps the default.
	Length int
}

// DefaultAlgorithm returns version 1 with the default output length.
func DefaultAlgorithm() Algorithm {
	return Algorithm{Version: 1}
}

// NewAlgorithm validates and returns an Algorithm.
func NewAlgorithm(version, length int) (Algorithm, error) {
	if version < 1 {
		return Algorithm{}, fmt.Errorf("algorithm version must be at least 1, got %d", version)
	}
	if length < 0 || length > crypto.MaxDeriveLength {
		return Algorithm{}, fmt.Errorf("algorithm length must be between 0 and %d, got %d", crypto.MaxDeriveLength, length)
	}
	return Algorithm{Version: version, Length: length}, nil
}

func algorithmFromRecord(rec *models.AlgorithmRecord) (Algorithm, error) {
	if rec == nil {
		return DefaultAlgorithm(), nil
	}

	version := rec.Version
	if version == 0 {
		version = 1
	}

	length := 0
	if rec.Length != nil {
		if *rec.Length <= 0 {
			return Algorithm{}, fmt.Errorf("%w: algorithm length must be positive, got %d", ErrDeserialization, *rec.Length)
		}
		length = *rec.Length
	}

	a, err := NewAlgorithm(version, length)
	if err != nil {
		return Algorithm{}, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return a, nil
}

func (a Algorithm) record() *models.AlgorithmRecord {
	rec := &models.AlgorithmRecord{Version: a.Version}
	if a.Length > 0 {
		length := a.Length
		rec.Length = &length
	}
	return rec
}
