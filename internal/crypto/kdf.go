// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-user KDF salt.
	SaltSize = 16

	// PasswordKeySize is the length of the key derived from a password.
	PasswordKeySize = 32

	// DefaultKDFIterations is the PBKDF2 iteration count used in production.
	DefaultKDFIterations = 100_000
)

// deriveKey runs PBKDF2-HMAC-SHA256 over password and salt.
func deriveKey(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, PasswordKeySize, sha256.New)
}
