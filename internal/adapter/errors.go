package adapter

import (
	"errors"

	"github.com/MKhiriev/go-file-vault/internal/app"
)

// Status class errors. Every non-2xx response wraps exactly one of them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooLarge            = errors.New("request too large")
	ErrInternalServerError = errors.New("server internal error")
)

// Reason errors, recognised from the "error" field of the response body.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("session expired")
	ErrTokenInvalid       = errors.New("session token is invalid")
	ErrFileNotFound       = errors.New("file not found")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")
	ErrDecryptionFailed   = errors.New("decryption failed")
)

var messageErrors = map[string]error{
	app.MsgEmailAlreadyExists:   ErrEmailTaken,
	app.MsgInvalidEmailPassword: ErrInvalidCredentials,
	app.MsgTokenIsExpired:       ErrTokenExpired,
	app.MsgTokenIsInvalid:       ErrTokenInvalid,
	app.MsgFileNotFound:         ErrFileNotFound,
	app.MsgQuotaExceeded:        ErrQuotaExceeded,
	app.MsgDecryptionFailed:     ErrDecryptionFailed,
}
