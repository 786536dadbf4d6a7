package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-file-vault/models"
)

// TokenService issues and verifies session tokens.
type TokenService interface {
	// Issue signs a token carrying the profile and the plaintext content key.
	Issue(ctx context.Context, profile models.UserProfile, contentKey []byte) (models.Token, error)
	// Verify checks signature, issuer and expiry in one pass. It returns
	// ErrTokenExpired for an expired token and ErrTokenInvalid otherwise.
	Verify(ctx context.Context, token string) (models.Claims, error)
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	Profile(ctx context.Context, userID string) (models.UserProfile, error)
}

// FileService stores and returns files encrypted with the content key of
// the authenticated user. The claims always come from a verified token.
type FileService interface {
	Upload(ctx context.Context, claims models.Claims, filename, mimeType string, content []byte) (models.File, error)
	List(ctx context.Context, claims models.Claims) ([]models.File, error)
	Get(ctx context.Context, claims models.Claims, fileID string) (models.File, error)
	Download(ctx context.Context, claims models.Claims, fileID string) (models.DecryptedFile, error)
	Delete(ctx context.Context, claims models.Claims, fileID string) error
	Usage(ctx context.Context, claims models.Claims) (models.StorageUsage, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
