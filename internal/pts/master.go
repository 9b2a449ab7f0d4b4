package pts

import (
	"crypto/subtle"
	"fmt"

	"github.com/MKhiriev/pass-the-salt/internal/crypto"
	"github.com/MKhiriev/pass-the-salt/models"
)

// Master is the verification record of a master password. Only the salt
// and the salted hash are kept.
type Master struct {
	Salt string
	Hash string
}

// NewMaster hashes password with a fresh salt.
func NewMaster(kc crypto.KeyChainService, password string) (*Master, error) {
	salt, hash, err := kc.HashPassword(password, "")
	if err != nil {
		return nil, fmt.Errorf("hash master password: %w", err)
	}
	return &Master{Salt: salt, Hash: hash}, nil
}

// IsValid reports whether candidate is the password this record was built
// from. The hashes are compared in constant time.
func (m *Master) IsValid(kc crypto.KeyChainService, candidate string) (bool, error) {
	_, hash, err := kc.HashPassword(candidate, m.Salt)
	if err != nil {
		return false, fmt.Errorf("hash candidate password: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(m.Hash)) == 1, nil
}

func masterFromRecord(rec *models.MasterRecord) *Master {
	if rec == nil {
		return nil
	}
	return &Master{Salt: rec.Salt, Hash: rec.Hash}
}

func (m *Master) record() *models.MasterRecord {
	if m == nil {
		return nil
	}
	return &models.MasterRecord{Salt: m.Salt, Hash: m.Hash}
}

// Config is the persisted store-wide configuration.
type Config struct {
	// Owner is mixed into the master key when not empty.
	Owner string

	// Master verifies the master password. It is optional.
	Master *Master
}

// PasswordSource supplies the master password.
type PasswordSource interface {
	Password() (string, error)
}

// StaticPassword is a literal master password.
type StaticPassword string

// Password implements [PasswordSource].
func (p StaticPassword) Password() (string, error) {
	return string(p), nil
}

// DeferredPassword asks for the master password when it is first needed,
// typically by prompting the user. A store calls it at most once.
type DeferredPassword func() (string, error)

// Password implements [PasswordSource].
func (f DeferredPassword) Password() (string, error) {
	return f()
}
