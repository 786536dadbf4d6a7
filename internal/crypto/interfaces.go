// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the key-envelope protocol of the vault.
//
// The scheme:
//
//	Salt, ContentKey = GenerateSalt() + GenerateContentKey()
//	PasswordKey      = DeriveKeyFromPassword(password, Salt)          (PBKDF2-SHA256)
//	SealedKey        = Salt ‖ Cipher.Encrypt(PasswordKey, ContentKey)
//	Verifier         = Cipher.Encrypt(ContentKey, password)
//
// A correct password re-derives PasswordKey, opens SealedKey and then the
// Verifier, whose plaintext must equal the supplied password.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Cipher is the single authenticated-encryption primitive of the vault.
// It seals content keys, password verifiers and file contents alike.
type Cipher interface {
	// GenerateKey returns a fresh random key in the cipher's native key
	// format.
	GenerateKey() ([]byte, error)

	// Encrypt seals plaintext under key. The returned blob is
	// self-describing: it embeds the format version, a timestamp, the nonce
	// and the authentication tag.
	Encrypt(key, plaintext []byte) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt. It fails closed with
	// [ErrCipherFailure] on a wrong key, truncated input or any tampering.
	Decrypt(key, blob []byte) ([]byte, error)
}

// EnvelopeService protects a user's content key at rest.
type EnvelopeService interface {
	// DeriveKeyFromPassword turns a password and salt into a 32-byte key
	// with a slow, salted KDF. Same inputs always yield the same key.
	DeriveKeyFromPassword(password string, salt []byte) []byte

	// GenerateSalt returns 16 random bytes.
	GenerateSalt() ([]byte, error)

	// GenerateContentKey returns a fresh random content key.
	GenerateContentKey() ([]byte, error)

	// SealEnvelope creates a new content key and returns everything that
	// has to be persisted at registration time.
	SealEnvelope(password string) (SealedEnvelope, error)

	// OpenEnvelope recovers the content key. Every failure, whether a wrong
	// password or a corrupted record, is reported as [ErrAuthFailure].
	OpenEnvelope(password string, sealedContentKeyWithSalt, sealedVerifier []byte) ([]byte, error)
}
