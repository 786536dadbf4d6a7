// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the persisted credential record of a vault account.
//
// The secret-bearing fields are never serialised to JSON: SealedContentKey
// can only be opened with the user's password, and SealedPasswordVerifier
// can only be opened with the content key recovered from it.
type User struct {
	// UserID is an opaque unique identifier (UUIDv7 string).
	UserID string `json:"user_id"`

	// Email is the unique login of the user, stored normalised
	// (trimmed and lower-cased).
	Email string `json:"email"`

	// DisplayName is the human-readable name shown in the UI.
	DisplayName string `json:"display_name"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Salt is the 16-byte random salt used by the password KDF.
	Salt []byte `json:"-"`

	// SealedContentKey is salt ‖ content key sealed under the password key.
	SealedContentKey []byte `json:"-"`

	// SealedPasswordVerifier is the plaintext password sealed under the
	// content key.
	SealedPasswordVerifier []byte `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the public projection of the record.
func (u User) Profile() UserProfile {
	return UserProfile{
		UserID:      u.UserID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// UserProfile is the public view of an account. It never carries the
// password, the salt or any form of the content key.
type UserProfile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}
