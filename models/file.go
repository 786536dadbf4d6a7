// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// File is the metadata of an encrypted file owned by a user. The encrypted
// bytes themselves live in the blob storage under [File.BlobID].
type File struct {
	// ID is the opaque identifier of the file (UUIDv7 string).
	ID string `json:"id"`

	// UserID is the owner of the file.
	UserID string `json:"user_id"`

	// OriginalFilename is the name the file was uploaded with.
	OriginalFilename string `json:"original_filename"`

	// MimeType is the detected or declared content type.
	MimeType string `json:"mime_type"`

	// Size is the plaintext size in bytes. Quota accounting uses this value.
	Size int64 `json:"size"`

	// CreatedAt is the upload timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// BlobID returns the identifier under which the encrypted content is kept
// in the blob storage. Blobs are namespaced by owner.
func (f File) BlobID() string {
	return f.UserID + "/" + f.ID
}

// DecryptedFile is the response of a content download: metadata plus the
// decrypted bytes (base64 in JSON).
type DecryptedFile struct {
	File    File   `json:"file"`
	Content []byte `json:"content"`

	// SealedAt is when the stored ciphertext was produced, taken from the
	// authenticated blob header.
	SealedAt time.Time `json:"sealed_at,omitzero"`
}

// StorageUsage reports how much of the quota a user consumes.
type StorageUsage struct {
	UsedBytes  int64 `json:"used_bytes"`
	QuotaBytes int64 `json:"quota_bytes"`
}
