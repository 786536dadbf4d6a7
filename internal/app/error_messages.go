// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// file-vault server handlers and the CLI client.
//
// All Msg* constants are human-readable message strings written into the
// "error" field of HTTP response bodies. The client matches on them to turn
// a response back into a typed error, so the wording is part of the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgValidationFailed prefixes field validation failures, e.g.
	// "validation failed: invalid email address".
	MsgValidationFailed = "validation failed"

	// MsgEmailAlreadyExists is returned when registration hits an email that
	// is already taken.
	MsgEmailAlreadyExists = "email already registered"

	// MsgInvalidEmailPassword is the single answer to a failed login.
	MsgInvalidEmailPassword = "invalid email or password"

	// MsgUnauthorized is returned when an authenticated route is called
	// without a usable bearer token.
	MsgUnauthorized = "unauthorized"

	// MsgTokenIsExpired is returned when the bearer token has expired.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsInvalid is returned for any other bearer token failure.
	MsgTokenIsInvalid = "token is invalid"

	MsgFileNotFound     = "file not found"
	MsgFileIsMissing    = "file is missing"
	MsgFileTooLarge     = "file is too large"
	MsgQuotaExceeded    = "storage quota exceeded"
	MsgDecryptionFailed = "decryption failed"
	MsgUserNotFound     = "user not found"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
