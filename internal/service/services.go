package service

import (
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	FileService    FileService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	cipher := crypto.NewCipher()
	envelope := crypto.NewEnvelopeService(cipher)

	tokenService := NewTokenService(cfg.App, logger)

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		TokenService:   tokenService,
		AuthService:    NewAuthService(storages.UserRepository, envelope, tokenService, cfg.App, logger),
		FileService:    NewFileService(storages.FileRepository, storages.BlobStorage, cipher, cfg.Storage, logger),
		AppInfoService: appInfoService,
	}, nil
}
