// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-file-vault/models"
)

func TestContextKeyString(t *testing.T) {
	if ClaimsCtxKey.String() != "claims" {
		t.Errorf("expected 'claims', got '%s'", ClaimsCtxKey.String())
	}
}

func TestGetClaimsFromContext_Success(t *testing.T) {
	claims := &models.Claims{UserID: "u-1", ContentKey: []byte{1, 2, 3}}
	ctx := WithClaims(context.Background(), claims)

	got, ok := GetClaimsFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != claims {
		t.Errorf("expected the same claims pointer")
	}

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != "u-1" {
		t.Errorf("expected userID=u-1, got %q (ok=%v)", userID, ok)
	}
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	if _, ok := GetClaimsFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not-claims")

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetClaimsFromContext_NilPointer(t *testing.T) {
	ctx := WithClaims(context.Background(), nil)

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for nil claims, got true")
	}
}

func TestGetUserIDFromContext_EmptyUserID(t *testing.T) {
	ctx := WithClaims(context.Background(), &models.Claims{})

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty user id, got true")
	}
}
