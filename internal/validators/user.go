package validators

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/MKhiriev/go-file-vault/models"
)

// Field name constants for account input.
const (
	// FieldEmail targets the login email.
	FieldEmail = "email"

	// FieldEmailPresent only requires a non-empty email. Login uses it so
	// that a malformed address fails like an unknown one.
	FieldEmailPresent = "email present"

	// FieldPassword targets the password length rule.
	FieldPassword = "password"

	// FieldPasswordPresent only requires a non-empty password. Login uses it
	// so that short passwords fall through to the uniform auth failure.
	FieldPasswordPresent = "password present"

	// FieldDisplayName targets the display name length rule.
	FieldDisplayName = "display_name"
)

const (
	MinPasswordLength    = 8
	MinDisplayNameLength = 3
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserValidator validates registration and login input.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator
// and returns it as the Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.RegisterRequest / *models.RegisterRequest
//   - models.LoginRequest / *models.LoginRequest
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks email format, password length (counted in
// characters) and display name length.
func (v *UserValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldDisplayName}
	}

	return v.validateFields(req.Email, req.Password, req.DisplayName, fields)
}

func (v *UserValidator) validateLoginRequest(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmailPresent, FieldPasswordPresent}
	}

	return v.validateFields(req.Email, req.Password, "", fields)
}

func (v *UserValidator) validateFields(email, password, displayName string, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !emailPattern.MatchString(email) {
				return ErrInvalidEmail
			}
		case FieldEmailPresent:
			if email == "" {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldPasswordPresent:
			if password == "" {
				return ErrEmptyPassword
			}
		case FieldDisplayName:
			if utf8.RuneCountInString(displayName) < MinDisplayNameLength {
				return ErrDisplayNameTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
