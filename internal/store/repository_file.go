package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

var fileColumns = []string{
	"file_id",
	"user_id",
	"original_filename",
	"mime_type",
	"size",
	"created_at",
}

// fileRepository is the SQL implementation of [FileRepository] over the
// "files" table. Every statement filters by user_id so a user can never see
// or delete another user's file, even with a guessed id.
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *fileRepository) SaveFile(ctx context.Context, file models.File) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Insert(file.TableName()).
		Columns(fileColumns...).
		Values(file.ID, file.UserID, file.OriginalFilename, file.MimeType, file.Size, file.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrFileAlreadyExists
		}

		log.Err(err).Str("func", "*fileRepository.SaveFile").Str("user_id", file.UserID).Msg("error inserting file")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *fileRepository) GetFile(ctx context.Context, userID, fileID string) (models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(fileColumns...).
		From(models.File{}.TableName()).
		Where(sq.Eq{"user_id": userID, "file_id": fileID}).
		ToSql()
	if err != nil {
		return models.File{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var file models.File
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&file.ID, &file.UserID, &file.OriginalFilename, &file.MimeType, &file.Size, &file.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.GetFile").Msg("error selecting file")
		return models.File{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return file, nil
}

// ListFiles returns the user's files, newest first.
func (r *fileRepository) ListFiles(ctx context.Context, userID string) ([]models.File, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(fileColumns...).
		From(models.File{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "file_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var files []models.File
	err = r.db.withRetry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		files = make([]models.File, 0)
		for rows.Next() {
			var file models.File
			if err = rows.Scan(&file.ID, &file.UserID, &file.OriginalFilename, &file.MimeType, &file.Size, &file.CreatedAt); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			files = append(files, file)
		}

		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error listing files")
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) DeleteFile(ctx context.Context, userID, fileID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Delete(models.File{}.TableName()).
		Where(sq.Eq{"user_id": userID, "file_id": fileID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Msg("error deleting file")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// TotalSize sums the plaintext sizes of all files the user owns.
func (r *fileRepository) TotalSize(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select("CAST(COALESCE(SUM(size), 0) AS BIGINT)").
		From(models.File{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	})
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.TotalSize").Msg("error summing file sizes")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return total, nil
}
