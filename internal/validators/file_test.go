package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-file-vault/models"
	"github.com/stretchr/testify/assert"
)

func TestFileValidator(t *testing.T) {
	valid := models.File{ID: "f-1", UserID: "u-1", OriginalFilename: "report.pdf", Size: 10}

	tests := []struct {
		name    string
		mutate  func(f *models.File)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.File) {}},
		{name: "empty file is fine", mutate: func(f *models.File) { f.Size = 0 }},
		{name: "missing id", mutate: func(f *models.File) { f.ID = "" }, wantErr: ErrInvalidFileID},
		{name: "missing id ignored when scoped", mutate: func(f *models.File) { f.ID = "" }, fields: []string{FieldFilename}},
		{name: "missing owner", mutate: func(f *models.File) { f.UserID = "" }, wantErr: ErrInvalidUserID},
		{name: "blank name", mutate: func(f *models.File) { f.OriginalFilename = "  " }, wantErr: ErrEmptyFilename},
		{name: "path in name", mutate: func(f *models.File) { f.OriginalFilename = "../etc/passwd" }, wantErr: ErrInvalidFilename},
		{name: "windows path", mutate: func(f *models.File) { f.OriginalFilename = `C:\x.txt` }, wantErr: ErrInvalidFilename},
		{name: "dot dot", mutate: func(f *models.File) { f.OriginalFilename = ".." }, wantErr: ErrInvalidFilename},
		{name: "negative size", mutate: func(f *models.File) { f.Size = -1 }, wantErr: ErrInvalidFileSize},
		{name: "unknown field", mutate: func(*models.File) {}, fields: []string{"color"}, wantErr: ErrUnknownField},
	}

	v := NewFileValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			err := v.Validate(context.Background(), &f, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewFileValidator().Validate(context.Background(), "file"), ErrUnsupportedType)
}
