package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/logger"
)

const blobExt = ".enc"

// fsBlobStorage keeps every blob as {root}/{id}.enc. Writes go through a
// temp file in the same directory and a rename, so readers never observe a
// partially written blob.
type fsBlobStorage struct {
	root   string
	logger *logger.Logger
}

// NewFSBlobStorage creates root if needed and returns a [BlobStorage] on it.
func NewFSBlobStorage(root string, logger *logger.Logger) (BlobStorage, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	logger.Debug().Str("root", root).Msg("creating file system blob storage")
	return &fsBlobStorage{root: root, logger: logger}, nil
}

func (s *fsBlobStorage) Write(ctx context.Context, id string, data []byte) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing blob: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error syncing blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing blob: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error publishing blob: %w", err)
	}

	return nil
}

func (s *fsBlobStorage) Read(ctx context.Context, id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return data, nil
}

func (s *fsBlobStorage) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrBlobNotFound
	}
	if err != nil {
		return fmt.Errorf("error deleting blob: %w", err)
	}

	return nil
}

// path maps id to a file below root. Ids are slash-separated relative
// names; anything that would leave root is rejected.
func (s *fsBlobStorage) path(id string) (string, error) {
	if id == "" || strings.HasPrefix(id, "/") || strings.Contains(id, `\`) {
		return "", ErrInvalidBlobID
	}
	for _, part := range strings.Split(id, "/") {
		if part == "" || part == "." || part == ".." {
			return "", ErrInvalidBlobID
		}
	}

	return filepath.Join(s.root, filepath.FromSlash(id)+blobExt), nil
}
