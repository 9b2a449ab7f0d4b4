// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// defaultDeriveLen is the number of bytes Derive produces before encoding
	// when no explicit length is requested (43 base64 characters).
	defaultDeriveLen = 32

	// MaxDeriveLength is the longest output Derive accepts.
	MaxDeriveLength = 1024

	saltSize = 16
	keySize  = 32
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// PBKDF2 iteration counts. Stored in the struct so tests and slower
	// targets can tune them.
	deriveIter int
	hashIter   int
	sealIter   int

	// Argon2id parameters for derivation version 2.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewKeyChainService constructs a [KeyChainService] with the production
// parameters:
//   - v1 derivation: PBKDF2-HMAC-SHA256, 100 000 iterations
//   - v2 derivation: Argon2id, 3 passes, 32 MiB, 4 threads
//   - master hash:   PBKDF2-HMAC-SHA256, 100 000 iterations
//   - substore key:  PBKDF2-HMAC-SHA256, 20 000 iterations, AES-256-GCM
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		deriveIter:   100_000,
		hashIter:     100_000,
		sealIter:     20_000,
		argonTime:    3,
		argonMemory:  32 * 1024,
		argonThreads: 4,
	}
}

// Derive implements [KeyChainService].
func (k *keyChainService) Derive(salt, key string, version, length int) (string, error) {
	if length < 0 || length > MaxDeriveLength {
		return "", fmt.Errorf("%w: %d, want 0 to %d", ErrInvalidLength, length, MaxDeriveLength)
	}

	size := defaultDeriveLen
	if length > 0 {
		// every 3 bytes encode to 4 characters
		size = max(size, (length*3+3)/4)
	}

	var raw []byte
	switch version {
	case 1:
		raw = pbkdf2.Key([]byte(key), []byte(salt), k.deriveIter, size, sha256.New)
	case 2:
		raw = argon2.IDKey([]byte(key), []byte(salt), k.argonTime, k.argonMemory, k.argonThreads, uint32(size))
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedAlgorithm, version)
	}

	out := base64.RawStdEncoding.EncodeToString(raw)
	if length > 0 {
		out = out[:length]
	}
	return out, nil
}

// HashPassword implements [KeyChainService]. Salt and hash are hex encoded.
func (k *keyChainService) HashPassword(password, salt string) (string, string, error) {
	if salt == "" {
		raw := make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, raw); err != nil {
			return "", "", fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(raw)
	}

	hash := pbkdf2.Key([]byte(password), []byte(salt), k.hashIter, keySize, sha256.New)
	return salt, hex.EncodeToString(hash), nil
}

// EncryptSecrets implements [KeyChainService]. The output is the standard
// base64 encoding of salt (16 bytes) ‖ nonce (12 bytes) ‖ ciphertext.
func (k *keyChainService) EncryptSecrets(secrets map[string]string, key string) (string, error) {
	plaintext, err := json.Marshal(secrets)
	if err != nil {
		return "", fmt.Errorf("marshal secrets: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := k.newGCM(key, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptSecrets implements [KeyChainService].
func (k *keyChainService) DecryptSecrets(encoded, key string) (map[string]string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrDecryption, err)
	}
	if len(blob) < saltSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	salt, rest := blob[:saltSize], blob[saltSize:]
	gcm, err := k.newGCM(key, salt)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}
	nonce, ciphertext := rest[:nonceSize], rest[nonceSize:]

	// An error here almost always means a wrong master key.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	secrets := make(map[string]string)
	if err = json.Unmarshal(plaintext, &secrets); err != nil {
		return nil, fmt.Errorf("%w: unmarshal secrets: %v", ErrDecryption, err)
	}
	return secrets, nil
}

// newGCM builds AES-256-GCM keyed by PBKDF2(key, salt).
func (k *keyChainService) newGCM(key string, salt []byte) (cipher.AEAD, error) {
	sealKey := pbkdf2.Key([]byte(key), salt, k.sealIter, keySize, sha256.New)

	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
