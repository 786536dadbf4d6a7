package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

func testFile() models.File {
	return models.File{
		ID:               "f-1",
		UserID:           "u-1",
		OriginalFilename: "report.pdf",
		MimeType:         "application/pdf",
		Size:             1024,
		CreatedAt:        time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
	}
}

func fileRows(files ...models.File) *sqlmock.Rows {
	rows := sqlmock.NewRows(fileColumns)
	for _, f := range files {
		rows.AddRow(f.ID, f.UserID, f.OriginalFilename, f.MimeType, f.Size, f.CreatedAt)
	}
	return rows
}

func TestSaveFile_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())
	file := testFile()

	mock.ExpectExec(`INSERT INTO files \(file_id,user_id,original_filename,mime_type,size,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\)`).
		WithArgs(file.ID, file.UserID, file.OriginalFilename, file.MimeType, file.Size, file.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveFile(context.Background(), file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveFile_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO files").WillReturnError(pgError(pgerrcode.UniqueViolation))

	if err := repo.SaveFile(context.Background(), testFile()); !errors.Is(err, ErrFileAlreadyExists) {
		t.Fatalf("expected ErrFileAlreadyExists, got %v", err)
	}
}

func TestGetFile_ScopedByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())
	file := testFile()

	mock.ExpectQuery(`SELECT file_id, user_id, original_filename, mime_type, size, created_at FROM files WHERE file_id = \$1 AND user_id = \$2`).
		WithArgs(file.ID, file.UserID).
		WillReturnRows(fileRows(file))

	got, err := repo.GetFile(context.Background(), file.UserID, file.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OriginalFilename != file.OriginalFilename || got.Size != file.Size {
		t.Errorf("unexpected file %+v", got)
	}
}

func TestGetFile_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM files").
		WithArgs("f-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetFile(context.Background(), "intruder", "f-1"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestListFiles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())
	first, second := testFile(), testFile()
	second.ID = "f-2"

	mock.ExpectQuery(`SELECT (.+) FROM files WHERE user_id = \$1 ORDER BY created_at DESC, file_id DESC`).
		WithArgs("u-1").
		WillReturnRows(fileRows(second, first))

	files, err := repo.ListFiles(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].ID != "f-2" || files[1].ID != "f-1" {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestListFiles_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM files").WillReturnRows(fileRows())

	files, err := repo.ListFiles(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", files)
	}
}

func TestListFiles_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM files").WillReturnError(errors.New("boom"))

	if _, err := repo.ListFiles(context.Background(), "u-1"); !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestDeleteFile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectExec(`DELETE FROM files WHERE file_id = \$1 AND user_id = \$2`).
		WithArgs("f-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM files").
		WithArgs("f-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteFile(context.Background(), "u-1", "f-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteFile(context.Background(), "u-1", "f-1"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound on second delete, got %v", err)
	}
}

func TestTotalSize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT CAST\(COALESCE\(SUM\(size\), 0\) AS BIGINT\) FROM files WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(4096)))

	total, err := repo.TotalSize(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4096 {
		t.Errorf("expected 4096, got %d", total)
	}
}
