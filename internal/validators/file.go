package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-file-vault/models"
)

// Field name constants for file metadata.
const (
	FieldFileID   = "file_id"
	FieldUserID   = "user_id"
	FieldFilename = "filename"
	FieldSize     = "size"
)

// FileValidator validates file metadata before it reaches storage.
type FileValidator struct {
}

// NewFileValidator constructs a new FileValidator
// and returns it as the Validator interface.
func NewFileValidator() Validator {
	return &FileValidator{}
}

// Validate accepts models.File or *models.File. Default fields: all.
func (v *FileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.File:
		return v.validateFile(value, fields...)
	case *models.File:
		return v.validateFile(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *FileValidator) validateFile(file models.File, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFileID, FieldUserID, FieldFilename, FieldSize}
	}

	for _, f := range fields {
		switch f {
		case FieldFileID:
			if file.ID == "" {
				return ErrInvalidFileID
			}
		case FieldUserID:
			if file.UserID == "" {
				return ErrInvalidUserID
			}
		case FieldFilename:
			name := strings.TrimSpace(file.OriginalFilename)
			if name == "" {
				return ErrEmptyFilename
			}
			if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
				return ErrInvalidFilename
			}
		case FieldSize:
			if file.Size < 0 {
				return ErrInvalidFileSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
