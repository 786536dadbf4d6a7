package service

import "errors"

var (
	// ErrValidation wraps every input validation failure. The concrete
	// reason is a validators.Err* value in the same chain.
	ErrValidation = errors.New("validation failed")

	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is the single answer to a failed login. Unknown
	// email, wrong password and a corrupted record all map to it.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")

	ErrDecryptionFailed = errors.New("decryption failed")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
	ErrFileNotFound     = errors.New("file not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
