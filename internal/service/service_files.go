package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
)

type fileService struct {
	files  store.FileRepository
	blobs  store.BlobStorage
	cipher crypto.Cipher

	validator validators.Validator

	// quotaBytes limits the summed plaintext size of a user's files.
	quotaBytes int64

	idGenerator *utils.UUIDGenerator
	now         func() time.Time

	logger *logger.Logger
}

func NewFileService(files store.FileRepository, blobs store.BlobStorage, cipher crypto.Cipher, cfg config.Storage, logger *logger.Logger) FileService {
	return &fileService{
		files:       files,
		blobs:       blobs,
		cipher:      cipher,
		validator:   validators.NewFileValidator(),
		quotaBytes:  cfg.QuotaBytes,
		idGenerator: utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      logger,
	}
}

// Upload encrypts content with the caller's content key and stores it.
// The quota is checked before the write; two parallel uploads may together
// overshoot it by at most one file.
func (s *fileService) Upload(ctx context.Context, claims models.Claims, filename, mimeType string, content []byte) (models.File, error) {
	log := logger.FromContext(ctx).With().Str("user_id", claims.UserID).Logger()

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(content)
	}

	file := models.File{
		ID:               s.idGenerator.Generate(),
		UserID:           claims.UserID,
		OriginalFilename: strings.TrimSpace(filename),
		MimeType:         mimeType,
		Size:             int64(len(content)),
		CreatedAt:        s.now().UTC(),
	}
	if err := s.validator.Validate(ctx, file); err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	used, err := s.files.TotalSize(ctx, claims.UserID)
	if err != nil {
		return models.File{}, fmt.Errorf("error calculating storage usage: %w", err)
	}
	if s.quotaBytes > 0 && used+file.Size > s.quotaBytes {
		log.Info().Int64("used", used).Int64("size", file.Size).Msg("upload rejected: quota exceeded")
		return models.File{}, ErrQuotaExceeded
	}

	encrypted, err := s.cipher.Encrypt(claims.ContentKey, content)
	if err != nil {
		return models.File{}, fmt.Errorf("error encrypting file: %w", err)
	}

	if err = s.blobs.Write(ctx, file.BlobID(), encrypted); err != nil {
		return models.File{}, fmt.Errorf("error writing encrypted file: %w", err)
	}

	if err = s.files.SaveFile(ctx, file); err != nil {
		if delErr := s.blobs.Delete(ctx, file.BlobID()); delErr != nil {
			log.Err(delErr).Str("file_id", file.ID).Msg("error removing orphaned blob")
		}
		return models.File{}, fmt.Errorf("error saving file metadata: %w", err)
	}

	log.Info().Str("file_id", file.ID).Int64("size", file.Size).Msg("file uploaded")
	return file, nil
}

func (s *fileService) List(ctx context.Context, claims models.Claims) ([]models.File, error) {
	files, err := s.files.ListFiles(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	return files, nil
}

func (s *fileService) Get(ctx context.Context, claims models.Claims, fileID string) (models.File, error) {
	file, err := s.files.GetFile(ctx, claims.UserID, fileID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return models.File{}, ErrFileNotFound
		}
		return models.File{}, fmt.Errorf("error getting file: %w", err)
	}

	return file, nil
}

func (s *fileService) Download(ctx context.Context, claims models.Claims, fileID string) (models.DecryptedFile, error) {
	log := logger.FromContext(ctx)

	file, err := s.Get(ctx, claims, fileID)
	if err != nil {
		return models.DecryptedFile{}, err
	}

	encrypted, err := s.blobs.Read(ctx, file.BlobID())
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			log.Error().Str("file_id", file.ID).Msg("metadata present but blob is missing")
			return models.DecryptedFile{}, ErrFileNotFound
		}
		return models.DecryptedFile{}, fmt.Errorf("error reading encrypted file: %w", err)
	}

	content, err := s.cipher.Decrypt(claims.ContentKey, encrypted)
	if err != nil {
		log.Warn().Str("user_id", claims.UserID).Str("file_id", file.ID).Msg("file decryption failed")
		return models.DecryptedFile{}, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	decrypted := models.DecryptedFile{File: file, Content: content}
	// the header is the AAD, so Decrypt already authenticated it
	if sealedAt, err := crypto.IssuedAt(encrypted); err == nil {
		decrypted.SealedAt = sealedAt.UTC()
	}

	return decrypted, nil
}

// Delete removes metadata first so the file disappears from listings even
// when the blob backend is unavailable.
func (s *fileService) Delete(ctx context.Context, claims models.Claims, fileID string) error {
	log := logger.FromContext(ctx)

	err := s.files.DeleteFile(ctx, claims.UserID, fileID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("error deleting file metadata: %w", err)
	}

	file := models.File{ID: fileID, UserID: claims.UserID}
	if err = s.blobs.Delete(ctx, file.BlobID()); err != nil && !errors.Is(err, store.ErrBlobNotFound) {
		log.Err(err).Str("file_id", fileID).Msg("error deleting blob")
	}

	log.Info().Str("user_id", claims.UserID).Str("file_id", fileID).Msg("file deleted")
	return nil
}

func (s *fileService) Usage(ctx context.Context, claims models.Claims) (models.StorageUsage, error) {
	used, err := s.files.TotalSize(ctx, claims.UserID)
	if err != nil {
		return models.StorageUsage{}, fmt.Errorf("error calculating storage usage: %w", err)
	}

	return models.StorageUsage{UsedBytes: used, QuotaBytes: s.quotaBytes}, nil
}
