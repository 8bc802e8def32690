// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	sealVersion byte = 1
	saltSize         = 16
)

var (
	// ErrOpenFailed is returned when a blob cannot be authenticated with the
	// configured secret.
	ErrOpenFailed = errors.New("sealed value cannot be opened")
	// ErrMalformedBlob is returned for blobs too short or of unknown version.
	ErrMalformedBlob = errors.New("malformed sealed value")
)

// secretSealer is the private implementation of [Sealer].
type secretSealer struct {
	secret []byte

	// Argon2id tuning parameters. Stored in the struct so tests can use
	// cheaper settings.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewSealer constructs a [Sealer] keyed by secret. An empty secret yields a
// pass-through sealer that stores values as-is.
//
// Argon2id parameters follow the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewSealer(secret string) Sealer {
	if secret == "" {
		return plainSealer{}
	}

	return &secretSealer{
		secret:       []byte(secret),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

func (s *secretSealer) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.secret, salt, s.argonTime, s.argonMemory, s.argonThreads, chacha20poly1305.KeySize)
}

// Seal implements [Sealer].
func (s *secretSealer) Seal(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, 1+saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	blob = append(blob, sealVersion)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)

	// The header is authenticated as additional data.
	return aead.Seal(blob, nonce, plaintext, blob[:1+saltSize]), nil
}

// Open implements [Sealer].
func (s *secretSealer) Open(blob []byte) ([]byte, error) {
	header := 1 + saltSize + chacha20poly1305.NonceSizeX
	if len(blob) < header || blob[0] != sealVersion {
		return nil, ErrMalformedBlob
	}

	salt := blob[1 : 1+saltSize]
	nonce := blob[1+saltSize : header]

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, blob[header:], blob[:1+saltSize])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return plaintext, nil
}

// plainSealer stores values unchanged.
type plainSealer struct{}

func (plainSealer) Seal(plaintext []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (plainSealer) Open(blob []byte) ([]byte, error) {
	return append([]byte(nil), blob...), nil
}
