// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by a session token.
//
// Besides the identity of the user it embeds the plaintext content key, so
// that every authenticated request can decrypt the user's files without the
// password. The HS256 signature covers every field, including ContentKey.
type Claims struct {
	// RegisteredClaims provides iss, sub, iat and exp as defined by RFC 7519.
	jwt.RegisteredClaims

	// UserID is the owner identifier. Mirrors the "sub" claim.
	UserID string `json:"user_id"`

	// Email is the normalised login of the user.
	Email string `json:"email"`

	// DisplayName is the human-readable name of the user.
	DisplayName string `json:"display_name"`

	// ContentKey is the user's symmetric content key. Encoded as standard
	// base64 inside the JWT payload.
	ContentKey []byte `json:"content_key"`
}

// Profile returns the identity part of the claims.
func (c Claims) Profile() UserProfile {
	return UserProfile{
		UserID:      c.UserID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
	}
}

// Token is an issued session token.
type Token struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Claims is the decoded claim set.
	Claims Claims `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
