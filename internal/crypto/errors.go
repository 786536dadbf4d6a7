// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrCipherFailure is returned by [Cipher.Decrypt] when a blob cannot be
	// opened: wrong key, truncated or tampered bytes, unknown format version.
	ErrCipherFailure = errors.New("cipher failure")

	// ErrAuthFailure is the only error [EnvelopeService.OpenEnvelope] reports
	// for a failed unseal. A wrong password and a corrupted record are
	// deliberately indistinguishable.
	ErrAuthFailure = errors.New("authentication failure")
)
