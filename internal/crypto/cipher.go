// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// blobVersion is the current blob format version.
	blobVersion byte = 0x01

	// headerSize is version (1) + unix timestamp (8).
	headerSize = 1 + 8
)

// xChaChaCipher implements [Cipher] with XChaCha20-Poly1305.
//
// Blob layout:
//
//	version (1) ‖ issued_at unix seconds, big-endian (8) ‖ nonce (24) ‖ ciphertext+tag
//
// The version byte and the timestamp are passed as associated data, so
// changing either invalidates the tag.
type xChaChaCipher struct {
	rand io.Reader
	now  func() time.Time
}

// NewCipher constructs the vault [Cipher].
func NewCipher() Cipher {
	return &xChaChaCipher{
		rand: rand.Reader,
		now:  time.Now,
	}
}

// GenerateKey implements [Cipher]. It reads 32 random bytes from the OS
// CSPRNG.
func (c *xChaChaCipher) GenerateKey() ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(c.rand, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Encrypt implements [Cipher].
func (c *xChaChaCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	blob := make([]byte, headerSize+aead.NonceSize(), headerSize+aead.NonceSize()+len(plaintext)+aead.Overhead())
	blob[0] = blobVersion
	binary.BigEndian.PutUint64(blob[1:headerSize], uint64(c.now().Unix()))

	nonce := blob[headerSize:]
	if _, err = io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(blob, nonce, plaintext, blob[:headerSize]), nil
}

// Decrypt implements [Cipher].
func (c *xChaChaCipher) Decrypt(key, blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipherFailure, err)
	}

	if len(blob) < headerSize+aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: blob too short", ErrCipherFailure)
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: unsupported blob version %d", ErrCipherFailure, blob[0])
	}

	header := blob[:headerSize]
	nonce := blob[headerSize : headerSize+aead.NonceSize()]
	ciphertext := blob[headerSize+aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipherFailure, err)
	}

	return plaintext, nil
}

// IssuedAt returns the timestamp embedded in a blob header. The value is
// only trustworthy after a successful [Cipher.Decrypt] of the same blob.
func IssuedAt(blob []byte) (time.Time, error) {
	if len(blob) < headerSize {
		return time.Time{}, fmt.Errorf("%w: blob too short", ErrCipherFailure)
	}
	return time.Unix(int64(binary.BigEndian.Uint64(blob[1:headerSize])), 0), nil
}
