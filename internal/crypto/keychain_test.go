package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFastKeyChain keeps the algorithms but lowers their cost so the suite
// stays quick.
func newFastKeyChain() *keyChainService {
	return &keyChainService{
		deriveIter:   1_000,
		hashIter:     1_000,
		sealIter:     1_000,
		argonTime:    1,
		argonMemory:  1024,
		argonThreads: 1,
	}
}

func TestDerive_DeterministicForSameInputs(t *testing.T) {
	svc := newFastKeyChain()

	for _, version := range []int{1, 2} {
		a, err := svc.Derive("salt", "key", version, 0)
		require.NoError(t, err)
		b, err := svc.Derive("salt", "key", version, 0)
		require.NoError(t, err)

		assert.Equal(t, a, b, "version %d", version)
		assert.Len(t, a, 43, "version %d", version)
	}
}

func TestDerive_InputsChangeOutput(t *testing.T) {
	svc := newFastKeyChain()

	base, err := svc.Derive("salt", "key", 1, 0)
	require.NoError(t, err)

	otherSalt, err := svc.Derive("salt2", "key", 1, 0)
	require.NoError(t, err)
	otherKey, err := svc.Derive("salt", "key2", 1, 0)
	require.NoError(t, err)
	otherVersion, err := svc.Derive("salt", "key", 2, 0)
	require.NoError(t, err)

	assert.NotEqual(t, base, otherSalt)
	assert.NotEqual(t, base, otherKey)
	assert.NotEqual(t, base, otherVersion)
}

func TestDerive_Length(t *testing.T) {
	svc := newFastKeyChain()

	full, err := svc.Derive("salt", "key", 1, 0)
	require.NoError(t, err)

	short, err := svc.Derive("salt", "key", 1, 12)
	require.NoError(t, err)
	assert.Len(t, short, 12)
	assert.Equal(t, full[:12], short)

	long, err := svc.Derive("salt", "key", 1, 100)
	require.NoError(t, err)
	assert.Len(t, long, 100)
}

func TestDerive_Errors(t *testing.T) {
	svc := newFastKeyChain()

	_, err := svc.Derive("salt", "key", 3, 0)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = svc.Derive("salt", "key", 0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	for _, length := range []int{-1, MaxDeriveLength + 1, 1 << 40} {
		for _, version := range []int{1, 2} {
			_, err = svc.Derive("salt", "key", version, length)
			assert.ErrorIs(t, err, ErrInvalidLength, "version %d length %d", version, length)
		}
	}

	out, err := svc.Derive("salt", "key", 1, MaxDeriveLength)
	require.NoError(t, err)
	assert.Len(t, out, MaxDeriveLength)
}

func TestHashPassword_NewSaltEachTime(t *testing.T) {
	svc := newFastKeyChain()

	s1, h1, err := svc.HashPassword("password", "")
	require.NoError(t, err)
	s2, h2, err := svc.HashPassword("password", "")
	require.NoError(t, err)

	assert.Len(t, s1, 32)
	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestHashPassword_ReusesGivenSalt(t *testing.T) {
	svc := newFastKeyChain()

	salt, hash, err := svc.HashPassword("password", "")
	require.NoError(t, err)

	again, hashAgain, err := svc.HashPassword("password", salt)
	require.NoError(t, err)
	assert.Equal(t, salt, again)
	assert.Equal(t, hash, hashAgain)

	_, other, err := svc.HashPassword("Password", salt)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestEncryptSecrets_RoundTrip(t *testing.T) {
	svc := newFastKeyChain()
	secrets := map[string]string{"a": "1", "b": "two"}

	blob, err := svc.EncryptSecrets(secrets, "owner|master")
	require.NoError(t, err)

	got, err := svc.DecryptSecrets(blob, "owner|master")
	require.NoError(t, err)
	assert.Equal(t, secrets, got)
}

func TestEncryptSecrets_FreshBlobEachTime(t *testing.T) {
	svc := newFastKeyChain()
	secrets := map[string]string{"a": "1"}

	b1, err := svc.EncryptSecrets(secrets, "key")
	require.NoError(t, err)
	b2, err := svc.EncryptSecrets(secrets, "key")
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2)
}

func TestDecryptSecrets_WrongKeyFails(t *testing.T) {
	svc := newFastKeyChain()

	blob, err := svc.EncryptSecrets(map[string]string{"a": "1"}, "right")
	require.NoError(t, err)

	got, err := svc.DecryptSecrets(blob, "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecryption)
	assert.Nil(t, got)
}

func TestDecryptSecrets_CorruptedBlob(t *testing.T) {
	svc := newFastKeyChain()

	blob, err := svc.EncryptSecrets(map[string]string{"a": "1"}, "key")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF

	_, err = svc.DecryptSecrets(base64.StdEncoding.EncodeToString(raw), "key")
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecryptSecrets_Malformed(t *testing.T) {
	svc := newFastKeyChain()

	tests := []struct {
		name string
		blob string
	}{
		{name: "not base64", blob: "%%%"},
		{name: "shorter than salt", blob: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "shorter than nonce", blob: base64.StdEncoding.EncodeToString(make([]byte, saltSize+4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DecryptSecrets(tt.blob, "key")
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

func TestNewKeyChainService_ProductionParameters(t *testing.T) {
	svc, ok := NewKeyChainService().(*keyChainService)
	require.True(t, ok)
	assert.Equal(t, 100_000, svc.deriveIter)
	assert.Equal(t, 100_000, svc.hashIter)
	assert.Equal(t, 20_000, svc.sealIter)
	assert.Equal(t, uint32(32*1024), svc.argonMemory)
}
