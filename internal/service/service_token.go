package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService signs and verifies HS256 session tokens.
type tokenService struct {
	// signKey is the HMAC secret. Loaded once at startup.
	signKey string

	// issuer is written into "iss" and required on verification.
	issuer string

	// duration is the lifetime of an issued token.
	duration time.Duration

	// now is the clock. Tests replace it.
	now func() time.Time

	logger *logger.Logger
}

func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return newTokenService(cfg, time.Now, logger)
}

func newTokenService(cfg config.App, now func() time.Time, logger *logger.Logger) *tokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		now:      now,
		logger:   logger,
	}
}

func (s *tokenService) Issue(ctx context.Context, profile models.UserProfile, contentKey []byte) (models.Token, error) {
	issuedAt := s.now()

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   profile.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.duration)),
		},
		UserID:      profile.UserID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		ContentKey:  contentKey,
	}

	token, err := utils.GenerateJWTToken(claims, s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error issuing token: %w", err)
	}

	return token, nil
}

func (s *tokenService) Verify(ctx context.Context, token string) (models.Claims, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.issuer, s.now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Msg("token is expired")
			return models.Claims{}, ErrTokenExpired
		}
		log.Debug().Str("reason", err.Error()).Msg("token is invalid")
		return models.Claims{}, ErrTokenInvalid
	}

	return *claims, nil
}
