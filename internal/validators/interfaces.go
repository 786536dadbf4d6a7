// Package validators checks user input before it reaches the crypto and
// storage layers. Each check is addressed by a field name, so a caller
// validates exactly the fields its operation needs: registration checks
// the full credential set, login only the email shape and that a password
// was given.
package validators

import "context"

// Validator checks value against the named fields. With no field names
// every field known for the value's type is checked.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
