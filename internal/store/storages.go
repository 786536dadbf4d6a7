// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
)

// Storages groups every persistence component the service layer needs.
type Storages struct {
	// UserRepository stores credential records.
	UserRepository UserRepository

	// FileRepository stores file metadata.
	FileRepository FileRepository

	// BlobStorage stores encrypted file content.
	BlobStorage BlobStorage

	db *DB
}

// NewStorages connects the database, applies migrations and selects the blob
// backend: S3 when a bucket is configured, the local directory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	db, err := NewConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	var blobs BlobStorage
	if cfg.S3.Bucket != "" {
		blobs, err = NewS3BlobStorage(ctx, cfg.S3, logger)
	} else {
		blobs, err = NewFSBlobStorage(cfg.Files.BinaryDataDir, logger)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("blob storage error: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		FileRepository: NewFileRepository(db, logger),
		BlobStorage:    blobs,
		db:             db,
	}, nil
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return errors.New("storages are not connected")
	}
	return s.db.Close()
}
