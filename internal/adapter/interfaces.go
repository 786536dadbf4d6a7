// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the CLI client to talk to
// the file-vault server.
//
// [ServerAdapter] hides the REST details from the command layer. Error
// responses are mapped by mapHTTPError to the sentinel values in errors.go,
// so callers can use [errors.Is] both on the status class (e.g.
// [ErrUnauthorized]) and on the concrete reason (e.g. [ErrTokenExpired]).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-file-vault/models"
)

// ServerAdapter defines the operations the CLI performs against the vault
// server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the bearer token currently held, or an empty string.
	Token() string

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error)

	// Login authenticates the user and stores the returned token via
	// SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Me returns the profile of the token owner.
	Me(ctx context.Context) (models.UserProfile, error)

	// Usage returns the consumed storage and the quota.
	Usage(ctx context.Context) (models.StorageUsage, error)

	// Upload sends content as a multipart form and returns the stored
	// metadata.
	Upload(ctx context.Context, filename string, content io.Reader) (models.File, error)

	// List returns the metadata of all files of the token owner.
	List(ctx context.Context) ([]models.File, error)

	// Download returns the metadata and decrypted content of a file.
	Download(ctx context.Context, fileID string) (models.DecryptedFile, error)

	// Delete removes a file.
	Delete(ctx context.Context, fileID string) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
