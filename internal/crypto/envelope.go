// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// SealedEnvelope is the output of [EnvelopeService.SealEnvelope].
type SealedEnvelope struct {
	// Salt is the KDF salt. It is also the prefix of SealedContentKey.
	Salt []byte

	// SealedContentKey is Salt ‖ Cipher.Encrypt(passwordKey, contentKey).
	SealedContentKey []byte

	// SealedVerifier is Cipher.Encrypt(contentKey, password).
	SealedVerifier []byte
}

// envelopeService is the private implementation of [EnvelopeService].
type envelopeService struct {
	cipher Cipher

	// iterations is the PBKDF2 iteration count. Stored in the struct so
	// tests can run with a cheaper KDF.
	iterations int
}

// NewEnvelopeService constructs an [EnvelopeService] on top of cipher with
// the production KDF cost.
func NewEnvelopeService(cipher Cipher) EnvelopeService {
	return newEnvelopeService(cipher, DefaultKDFIterations)
}

func newEnvelopeService(cipher Cipher, iterations int) *envelopeService {
	return &envelopeService{
		cipher:     cipher,
		iterations: iterations,
	}
}

// DeriveKeyFromPassword implements [EnvelopeService].
func (e *envelopeService) DeriveKeyFromPassword(password string, salt []byte) []byte {
	return deriveKey(password, salt, e.iterations)
}

// GenerateSalt implements [EnvelopeService]. It reads 16 random bytes from
// the OS CSPRNG.
func (e *envelopeService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateContentKey implements [EnvelopeService]. The key lives in the
// cipher's key space.
func (e *envelopeService) GenerateContentKey() ([]byte, error) {
	return e.cipher.GenerateKey()
}

// SealEnvelope implements [EnvelopeService].
func (e *envelopeService) SealEnvelope(password string) (SealedEnvelope, error) {
	salt, err := e.GenerateSalt()
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("generate salt: %w", err)
	}

	contentKey, err := e.GenerateContentKey()
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("generate content key: %w", err)
	}

	passwordKey := e.DeriveKeyFromPassword(password, salt)

	sealedKey, err := e.cipher.Encrypt(passwordKey, contentKey)
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("seal content key: %w", err)
	}

	verifier, err := e.cipher.Encrypt(contentKey, []byte(password))
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("seal password verifier: %w", err)
	}

	sealedKeyWithSalt := make([]byte, 0, len(salt)+len(sealedKey))
	sealedKeyWithSalt = append(sealedKeyWithSalt, salt...)
	sealedKeyWithSalt = append(sealedKeyWithSalt, sealedKey...)

	return SealedEnvelope{
		Salt:             salt,
		SealedContentKey: sealedKeyWithSalt,
		SealedVerifier:   verifier,
	}, nil
}

// OpenEnvelope implements [EnvelopeService].
func (e *envelopeService) OpenEnvelope(password string, sealedContentKeyWithSalt, sealedVerifier []byte) ([]byte, error) {
	if len(sealedContentKeyWithSalt) <= SaltSize {
		return nil, ErrAuthFailure
	}

	salt, sealedKey := sealedContentKeyWithSalt[:SaltSize], sealedContentKeyWithSalt[SaltSize:]
	passwordKey := e.DeriveKeyFromPassword(password, salt)

	contentKey, err := e.cipher.Decrypt(passwordKey, sealedKey)
	if err != nil {
		return nil, ErrAuthFailure
	}

	storedPassword, err := e.cipher.Decrypt(contentKey, sealedVerifier)
	if err != nil {
		return nil, ErrAuthFailure
	}

	if subtle.ConstantTimeCompare(storedPassword, []byte(password)) != 1 {
		return nil, ErrAuthFailure
	}

	return contentKey, nil
}
