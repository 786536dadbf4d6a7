// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

// UserRepository persists credential records. Records are create-only.
type UserRepository interface {
	// CreateUser inserts a new record. The unique index on email is the sole
	// arbiter of duplicates: a violation returns ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrUserNotFound when no record matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrUserNotFound when no record matches.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// FileRepository persists file metadata. Every lookup is scoped by owner.
type FileRepository interface {
	SaveFile(ctx context.Context, file models.File) error
	GetFile(ctx context.Context, userID, fileID string) (models.File, error)
	ListFiles(ctx context.Context, userID string) ([]models.File, error)
	DeleteFile(ctx context.Context, userID, fileID string) error
	TotalSize(ctx context.Context, userID string) (int64, error)
}

// BlobStorage keeps encrypted file content addressed by an opaque id.
type BlobStorage interface {
	Write(ctx context.Context, id string, data []byte) error
	Read(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
