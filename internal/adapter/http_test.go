// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientConfig{ServerURL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "https with trailing slash", raw: " https://vault.example.com/ ", want: "https://vault.example.com"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		writeJSON(t, w, http.StatusCreated, models.UserProfile{UserID: "u-1", Email: req.Email, DisplayName: req.DisplayName})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Register(context.Background(), models.RegisterRequest{Email: "alice@example.com", Password: "password123", DisplayName: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.Empty(t, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: app.MsgEmailAlreadyExists})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "header-token", Profile: models.UserProfile{UserID: "u-1"}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "header-token", got.Token)
	assert.Equal(t, "u-1", got.Profile.UserID)
	assert.Equal(t, "header-token", a.Token())
}

func TestLogin_TokenOnlyInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "body-token"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.LoginRequest{})

	require.NoError(t, err)
	assert.Equal(t, "body-token", got.Token)
	assert.Equal(t, "body-token", a.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: app.MsgInvalidEmailPassword})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, a.Token())
}

func TestAuthedRequests_SendBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer session-token" {
			writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: app.MsgUnauthorized})
			return
		}

		switch r.URL.Path {
		case "/api/user/me":
			writeJSON(t, w, http.StatusOK, models.UserProfile{UserID: "u-1"})
		case "/api/user/storage":
			writeJSON(t, w, http.StatusOK, models.StorageUsage{UsedBytes: 10, QuotaBytes: 100})
		case "/api/files/":
			writeJSON(t, w, http.StatusOK, []models.File{{ID: "f-1"}, {ID: "f-2"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	_, err := a.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	a.SetToken("  session-token\n")

	profile, err := a.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.UserID)

	usage, err := a.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StorageUsage{UsedBytes: 10, QuotaBytes: 100}, usage)

	files, err := a.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestUpload_SendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/files/", r.URL.Path)

		part, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer part.Close()
		content, err := io.ReadAll(part)
		require.NoError(t, err)

		writeJSON(t, w, http.StatusCreated, models.File{ID: "f-1", OriginalFilename: header.Filename, Size: int64(len(content))})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("session-token")

	got, err := a.Upload(context.Background(), "notes.txt", strings.NewReader("hello vault"))

	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.OriginalFilename)
	assert.EqualValues(t, len("hello vault"), got.Size)
}

func TestUpload_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: app.MsgQuotaExceeded})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Upload(context.Background(), "big.bin", strings.NewReader("data"))

	assert.ErrorIs(t, err, ErrTooLarge)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/files/f-1/content":
			writeJSON(t, w, http.StatusOK, models.DecryptedFile{File: models.File{ID: "f-1"}, Content: []byte("secret")})
		case "/api/files/f-2/content":
			writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: app.MsgDecryptionFailed})
		default:
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: app.MsgFileNotFound})
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	got, err := a.Download(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got.Content)

	_, err = a.Download(ctx, "f-2")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = a.Download(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/files/f-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.NoError(t, a.Delete(context.Background(), "f-1"))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}

func TestMapHTTPError_UnknownStatusAndPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/me":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	_, err := a.Me(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502: upstream down")

	_, err = a.Usage(context.Background())
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Contains(t, err.Error(), http.StatusText(http.StatusInternalServerError))
}
