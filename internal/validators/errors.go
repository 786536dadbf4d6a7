package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrDisplayNameTooShort = errors.New("display name must be at least 3 characters")
	ErrEmptyPassword       = errors.New("password is required")
	ErrEmptyEmail          = errors.New("email is required")

	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrInvalidFileID   = errors.New("invalid file ID")
	ErrEmptyFilename   = errors.New("filename is required")
	ErrInvalidFilename = errors.New("filename must not contain path separators")
	ErrInvalidFileSize = errors.New("invalid file size")
)
