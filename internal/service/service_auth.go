// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/internal/validators"
	"github.com/MKhiriev/go-file-vault/models"
	"golang.org/x/sync/semaphore"
)

// dummySalt feeds the KDF when the email is unknown, so a failed lookup
// costs as much as a failed password check.
var dummySalt = make([]byte, 16)

// authService is the only component that handles plaintext passwords.
type authService struct {
	// userRepository persists credential records.
	userRepository store.UserRepository

	// envelope seals and opens content keys.
	envelope crypto.EnvelopeService

	// tokens mints session tokens after a successful login.
	tokens TokenService

	// validator checks registration and login input.
	validator validators.Validator

	// kdfSlots bounds the number of concurrent password derivations.
	kdfSlots *semaphore.Weighted

	idGenerator *utils.UUIDGenerator
	now         func() time.Time

	logger *logger.Logger
}

// NewAuthService wires the orchestrator. cfg.KDFConcurrency must be positive.
func NewAuthService(userRepository store.UserRepository, envelope crypto.EnvelopeService, tokens TokenService, cfg config.App, logger *logger.Logger) AuthService {
	slots := int64(cfg.KDFConcurrency)
	if slots < 1 {
		slots = 1
	}

	return &authService{
		userRepository: userRepository,
		envelope:       envelope,
		tokens:         tokens,
		validator:      validators.NewUserValidator(),
		kdfSlots:       semaphore.NewWeighted(slots),
		idGenerator:    utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var sealed crypto.SealedEnvelope
	err := a.withKDFSlot(ctx, func() error {
		var sealErr error
		sealed, sealErr = a.envelope.SealEnvelope(req.Password)
		return sealErr
	})
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("error sealing envelope: %w", err)
	}

	user := models.User{
		UserID:                 a.idGenerator.Generate(),
		Email:                  req.Email,
		DisplayName:            req.DisplayName,
		CreatedAt:              a.now().UTC(),
		Salt:                   sealed.Salt,
		SealedContentKey:       sealed.SealedContentKey,
		SealedPasswordVerifier: sealed.SealedVerifier,
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Info().Str("email", req.Email).Msg("registration rejected: email already registered")
			return models.UserProfile{}, ErrDuplicateEmail
		}
		log.Err(err).Str("email", req.Email).Msg("error saving new user")
		return models.UserProfile{}, fmt.Errorf("error saving new user: %w", err)
	}

	log.Info().Str("user_id", created.UserID).Msg("user registered")
	return created.Profile(), nil
}

// Login follows one path: lookup, derive, unseal key, unseal verifier,
// compare, issue. Every failing step yields ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	req.Email = normalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return models.LoginResponse{}, fmt.Errorf("error looking up user: %w", err)
		}
		if err = a.withKDFSlot(ctx, func() error {
			a.envelope.DeriveKeyFromPassword(req.Password, dummySalt)
			return nil
		}); err != nil {
			return models.LoginResponse{}, err
		}
		log.Info().Msg("login failed")
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	var contentKey []byte
	err = a.withKDFSlot(ctx, func() error {
		var openErr error
		contentKey, openErr = a.envelope.OpenEnvelope(req.Password, user.SealedContentKey, user.SealedPasswordVerifier)
		return openErr
	})
	if err != nil {
		if errors.Is(err, crypto.ErrAuthFailure) {
			log.Info().Str("user_id", user.UserID).Msg("login failed")
			return models.LoginResponse{}, ErrInvalidCredentials
		}
		return models.LoginResponse{}, err
	}

	profile := user.Profile()
	token, err := a.tokens.Issue(ctx, profile, contentKey)
	if err != nil {
		log.Err(err).Str("user_id", user.UserID).Msg("error issuing token")
		return models.LoginResponse{}, fmt.Errorf("error issuing token: %w", err)
	}

	log.Info().Str("user_id", user.UserID).Msg("user logged in")
	return models.LoginResponse{Token: token.String(), Profile: profile}, nil
}

func (a *authService) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.UserProfile{}, ErrUserNotFound
		}
		return models.UserProfile{}, fmt.Errorf("error getting user profile: %w", err)
	}

	return user.Profile(), nil
}

// withKDFSlot runs fn while holding one KDF slot. Waiting for a slot is
// aborted when ctx is done.
func (a *authService) withKDFSlot(ctx context.Context, fn func() error) error {
	if err := a.kdfSlots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for key derivation slot: %w", err)
	}
	defer a.kdfSlots.Release(1)

	return fn()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
