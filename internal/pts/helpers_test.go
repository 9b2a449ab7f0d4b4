package pts

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeKeyChain is a fast deterministic stand-in for the real key chain. The
// "ciphertext" is the key digest followed by the JSON mapping, so a wrong
// key is detected the way authenticated decryption would detect it.
type fakeKeyChain struct {
	mu       sync.Mutex
	encrypts int
	decrypts int
}

var errFakeDecrypt = errors.New("fake: authentication failed")

func (f *fakeKeyChain) Derive(salt, key string, version, length int) (string, error) {
	sum := sha256.Sum256([]byte(salt + "\x00" + key + "\x00" + strconv.Itoa(version)))
	out := hex.EncodeToString(sum[:])
	if length > 0 && length < len(out) {
		out = out[:length]
	}
	return out, nil
}

func (f *fakeKeyChain) HashPassword(password, salt string) (string, string, error) {
	if salt == "" {
		salt = "fixed-salt"
	}
	sum := sha256.Sum256([]byte(salt + password))
	return salt, hex.EncodeToString(sum[:]), nil
}

func (f *fakeKeyChain) EncryptSecrets(secrets map[string]string, key string) (string, error) {
	f.mu.Lock()
	f.encrypts++
	f.mu.Unlock()

	b, err := json.Marshal(secrets)
	if err != nil {
		return "", err
	}
	return keyDigest(key) + ":" + string(b), nil
}

func (f *fakeKeyChain) DecryptSecrets(blob, key string) (map[string]string, error) {
	f.mu.Lock()
	f.decrypts++
	f.mu.Unlock()

	digest, payload, ok := strings.Cut(blob, ":")
	if !ok || digest != keyDigest(key) {
		return nil, errFakeDecrypt
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, errFakeDecrypt
	}
	return out, nil
}

func keyDigest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func newTestStore(t *testing.T, opts ...Option) (*PassTheSalt, *fakeKeyChain) {
	t.Helper()

	kc := &fakeKeyChain{}
	p := New(append([]Option{WithKeyChain(kc)}, opts...)...).WithMaster(StaticPassword("hunter2"))
	return p, kc
}

// substore decrypts the store's ciphertext directly.
func substore(t *testing.T, p *PassTheSalt) map[string]string {
	t.Helper()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.secretsEncrypted == nil {
		return nil
	}
	key, err := p.masterKey()
	require.NoError(t, err)
	out, err := p.keychain.DecryptSecrets(*p.secretsEncrypted, key)
	require.NoError(t, err)
	return out
}

func mustGet(t *testing.T, p *PassTheSalt, label string) string {
	t.Helper()

	s, err := p.Get(label)
	require.NoError(t, err)
	v, err := s.Get()
	require.NoError(t, err)
	return v
}
