package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	dir := t.TempDir()
	storages, err := NewStorages(context.Background(), config.Storage{
		DB:    config.DB{DSN: filepath.Join(dir, "db", "vault.db"), Driver: config.DriverSQLite},
		Files: config.Files{BinaryDataDir: filepath.Join(dir, "blobs")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func TestSQLite_UserRepository(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	user := testUser()

	_, err := s.UserRepository.CreateUser(ctx, user)
	require.NoError(t, err)

	byEmail, err := s.UserRepository.FindUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, byEmail.UserID)
	assert.Equal(t, user.Salt, byEmail.Salt)
	assert.Equal(t, user.SealedContentKey, byEmail.SealedContentKey)
	assert.Equal(t, user.SealedPasswordVerifier, byEmail.SealedPasswordVerifier)
	assert.True(t, user.CreatedAt.Equal(byEmail.CreatedAt), "created_at %v != %v", user.CreatedAt, byEmail.CreatedAt)

	byID, err := s.UserRepository.FindUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = s.UserRepository.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_DuplicateEmailRejectedByIndex(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	first := testUser()
	_, err := s.UserRepository.CreateUser(ctx, first)
	require.NoError(t, err)

	second := testUser()
	second.UserID = "another-id"
	_, err = s.UserRepository.CreateUser(ctx, second)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	third := testUser()
	third.Email = "other@example.com"
	_, err = s.UserRepository.CreateUser(ctx, third)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists, "duplicate id must be rejected as well")
}

func TestSQLite_FileRepository(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	user := testUser()
	_, err := s.UserRepository.CreateUser(ctx, user)
	require.NoError(t, err)

	older := models.File{ID: "f-1", UserID: user.UserID, OriginalFilename: "a.txt", MimeType: "text/plain", Size: 10, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.File{ID: "f-2", UserID: user.UserID, OriginalFilename: "b.txt", MimeType: "text/plain", Size: 32, CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.FileRepository.SaveFile(ctx, older))
	require.NoError(t, s.FileRepository.SaveFile(ctx, newer))
	assert.ErrorIs(t, s.FileRepository.SaveFile(ctx, older), ErrFileAlreadyExists)

	files, err := s.FileRepository.ListFiles(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f-2", files[0].ID)

	total, err := s.FileRepository.TotalSize(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)

	_, err = s.FileRepository.GetFile(ctx, "someone-else", "f-1")
	assert.ErrorIs(t, err, ErrFileNotFound)

	require.NoError(t, s.FileRepository.DeleteFile(ctx, user.UserID, "f-1"))
	assert.ErrorIs(t, s.FileRepository.DeleteFile(ctx, user.UserID, "f-1"), ErrFileNotFound)

	total, err = s.FileRepository.TotalSize(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestNewConnectDB_UnknownDriver(t *testing.T) {
	_, err := NewConnectDB(context.Background(), config.DB{DSN: "x", Driver: "mysql"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
