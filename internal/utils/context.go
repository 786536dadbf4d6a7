// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token signing
// and verification, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which the auth middleware stores the
// verified session claims (*models.Claims).
//
// Example of writing a value to the context:
//
//	ctx := utils.WithClaims(ctx, claims)
var ClaimsCtxKey = contextKey("claims")

// WithClaims returns a copy of ctx carrying the verified claims.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves the verified session claims.
//
// Returns the claims and an ok flag:
//   - ok == true: claims are present and non-nil
//   - ok == false: value is missing or has an unexpected type
func GetClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*models.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// GetUserIDFromContext retrieves the authenticated user identifier.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
